// Package wechatpaytest builds signed gateway callbacks for tests and the
// local sandbox.
package wechatpaytest

import (
	"encoding/xml"
	"strconv"

	"petcare/config"
	"petcare/infrastructure/wechatpay"
)

// PaidNotify is a successful payment notify signed with the merchant key.
func PaidNotify(cfg config.WechatPayConfig, outTradeNo, transactionID string, totalFee int64) []byte {
	return sign(cfg, wechatpay.Params{
		"return_code":    "SUCCESS",
		"result_code":    "SUCCESS",
		"out_trade_no":   outTradeNo,
		"transaction_id": transactionID,
		"total_fee":      strconv.FormatInt(totalFee, 10),
		"time_end":       "20240601120000",
	})
}

// FailedNotify reports result_code FAIL for outTradeNo.
func FailedNotify(cfg config.WechatPayConfig, outTradeNo, errCode string) []byte {
	return sign(cfg, wechatpay.Params{
		"return_code":  "SUCCESS",
		"result_code":  "FAIL",
		"out_trade_no": outTradeNo,
		"err_code":     errCode,
		"err_code_des": "payment failed",
	})
}

func sign(cfg config.WechatPayConfig, p wechatpay.Params) []byte {
	p["appid"] = cfg.AppID
	p["mch_id"] = cfg.MchID
	p["nonce_str"] = "sandbox"
	p["sign"] = wechatpay.Sign(p, cfg.APIKey)
	body, _ := xml.Marshal(p)
	return body
}
