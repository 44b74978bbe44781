// Package wechatpay is a small WeChat Pay v2 (XML + MD5) client covering
// unifiedorder, the payment notify callback and JSAPI pay parameters.
package wechatpay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"petcare/config"
	"petcare/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	codeSuccess = "SUCCESS"

	TradeTypeJSAPI  = "JSAPI"
	TradeTypeNative = "NATIVE"
)

var (
	ErrInvalidSignature = errors.New("wechatpay: invalid signature")
	ErrNotConfigured    = errors.New("wechatpay: merchant is not configured")
	ErrMerchantMismatch = errors.New("wechatpay: notify is for another merchant")
)

// GatewayError is a FAIL return_code or result_code from the gateway.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("wechatpay: %s: %s", e.Code, e.Message)
}

type Client struct {
	cfg  config.WechatPayConfig
	http *resty.Client
	now  func() time.Time
}

func NewClient(cfg config.WechatPayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cfg.TradeType == "" {
		cfg.TradeType = TradeTypeJSAPI
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Gateway, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "text/xml; charset=utf-8")
	return &Client{cfg: cfg, http: http, now: time.Now}
}

func (c *Client) TradeType() string { return c.cfg.TradeType }

// UnifiedOrderRequest amounts are in fen. OpenID is required for JSAPI.
// An empty TradeType uses the configured one.
type UnifiedOrderRequest struct {
	TradeType  string
	Body       string
	OutTradeNo string
	TotalFee   int64
	ClientIP   string
	OpenID     string
	Attach     string
}

type UnifiedOrderResult struct {
	PrepayID string
	CodeURL  string
}

func nonce() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// UnifiedOrder places a prepay order and verifies the signed reply.
func (c *Client) UnifiedOrder(ctx context.Context, req UnifiedOrderRequest) (*UnifiedOrderResult, error) {
	if c.cfg.AppID == "" || c.cfg.MchID == "" || c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if req.ClientIP == "" {
		req.ClientIP = "127.0.0.1"
	}
	if req.TradeType == "" {
		req.TradeType = c.cfg.TradeType
	}
	params := Params{
		"appid":            c.cfg.AppID,
		"mch_id":           c.cfg.MchID,
		"nonce_str":        nonce(),
		"body":             req.Body,
		"out_trade_no":     req.OutTradeNo,
		"total_fee":        strconv.FormatInt(req.TotalFee, 10),
		"spbill_create_ip": req.ClientIP,
		"notify_url":       c.cfg.NotifyURL,
		"trade_type":       req.TradeType,
		"sign_type":        "MD5",
	}
	if req.TradeType == TradeTypeJSAPI {
		params["openid"] = req.OpenID
	}
	if req.Attach != "" {
		params["attach"] = req.Attach
	}
	params["sign"] = Sign(params, c.cfg.APIKey)

	body, err := encode(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/pay/unifiedorder")
	if err != nil {
		return nil, fmt.Errorf("wechatpay: unifiedorder request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("wechatpay: unifiedorder http status %d", resp.StatusCode())
	}

	reply, err := decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("wechatpay: decode unifiedorder reply: %w", err)
	}
	if err := checkCodes(reply); err != nil {
		logger.FromContext(ctx).Warn("WeChat unifiedorder rejected",
			zap.String("out_trade_no", req.OutTradeNo),
			zap.Error(err),
		)
		return nil, err
	}
	if !Verify(reply, c.cfg.APIKey) {
		return nil, ErrInvalidSignature
	}

	return &UnifiedOrderResult{PrepayID: reply["prepay_id"], CodeURL: reply["code_url"]}, nil
}

func checkCodes(p Params) error {
	if p["return_code"] != codeSuccess {
		return &GatewayError{Code: p["return_code"], Message: p["return_msg"]}
	}
	if p["result_code"] != codeSuccess {
		return &GatewayError{Code: p["err_code"], Message: p["err_code_des"]}
	}
	return nil
}

// JSAPIParams are the signed arguments of wx.requestPayment.
func (c *Client) JSAPIParams(prepayID string) map[string]string {
	p := Params{
		"appId":     c.cfg.AppID,
		"timeStamp": strconv.FormatInt(c.now().Unix(), 10),
		"nonceStr":  nonce(),
		"package":   "prepay_id=" + prepayID,
		"signType":  "MD5",
	}
	p["paySign"] = Sign(p, c.cfg.APIKey)
	return p
}

// Notification is a verified payment callback. Paid is false when the
// gateway reports result_code FAIL; FailReason then carries err_code.
type Notification struct {
	OutTradeNo    string
	TransactionID string
	TotalFee      int64
	OpenID        string
	Attach        string
	Paid          bool
	FailReason    string
}

// ParseNotify decodes and verifies a notify body. A FAIL return_code is a
// *GatewayError; a FAIL result_code parses into an unpaid Notification.
func (c *Client) ParseNotify(body []byte) (*Notification, error) {
	p, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("wechatpay: decode notify: %w", err)
	}
	if p["return_code"] != codeSuccess {
		return nil, &GatewayError{Code: p["return_code"], Message: p["return_msg"]}
	}
	if !Verify(p, c.cfg.APIKey) {
		return nil, ErrInvalidSignature
	}
	if p["appid"] != c.cfg.AppID || p["mch_id"] != c.cfg.MchID {
		return nil, ErrMerchantMismatch
	}

	n := &Notification{
		OutTradeNo:    p["out_trade_no"],
		TransactionID: p["transaction_id"],
		OpenID:        p["openid"],
		Attach:        p["attach"],
	}
	if p["result_code"] != codeSuccess {
		n.FailReason = (&GatewayError{Code: p["err_code"], Message: p["err_code_des"]}).Error()
		return n, nil
	}
	fee, err := strconv.ParseInt(p["total_fee"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("wechatpay: bad total_fee %q", p["total_fee"])
	}
	n.TotalFee = fee
	n.Paid = true
	return n, nil
}

// Ack is the XML reply the gateway expects from a notify handler.
func Ack(ok bool, message string) string {
	code := codeSuccess
	if !ok {
		code = "FAIL"
	}
	if message == "" {
		message = "OK"
	}
	body, _ := encode(Params{"return_code": code, "return_msg": message})
	return string(body)
}
