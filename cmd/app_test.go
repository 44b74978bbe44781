package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petcare/config"
	"petcare/infrastructure/persistence/mysql/mysqltest"
	"petcare/infrastructure/wechatpay"
	"petcare/infrastructure/wechatpay/wechatpaytest"
	"petcare/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "192006250b4c09247ec02edce69f6a2d"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type e2e struct {
	t   *testing.T
	app *App
	pay config.WechatPayConfig
}

func fakeUnifiedOrder(w http.ResponseWriter, r *http.Request) {
	var req wechatpay.Params
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	reply := wechatpay.Params{
		"return_code": "SUCCESS",
		"result_code": "SUCCESS",
		"prepay_id":   "wx-prepay-1",
		"code_url":    "weixin://wxpay/bizpayurl?pr=abc",
		"nonce_str":   "n1",
	}
	reply["sign"] = wechatpay.Sign(reply, testAPIKey)
	_ = xml.NewEncoder(w).Encode(reply)
}

func newE2E(t *testing.T) *e2e {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fakeUnifiedOrder))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "petcare", Version: "test", Env: "test"},
		Server:    config.ServerConfig{Port: "0"},
		JWT:       config.JWTConfig{Secret: "test", Issuer: "petcare", AccessTTL: time.Hour, RefreshTTL: time.Hour},
		Integral:  config.IntegralConfig{PointsPerYuan: 1, SignInPoints: 5, RegisterPoints: 100},
		Worker:    config.WorkerConfig{Enabled: true, PollInterval: time.Second, BatchSize: 50, MaxRetries: 3},
		Bootstrap: config.BootstrapConfig{AdminUsername: "root", AdminPassword: "secret123"},
		Storage:   config.StorageConfig{Provider: "local", LocalDir: t.TempDir(), PublicURL: "http://localhost/uploads"},
		WechatPay: config.WechatPayConfig{
			AppID: "wx123", MchID: "m1", APIKey: testAPIKey,
			NotifyURL: "https://example.com/notify", Gateway: srv.URL,
			TradeType: wechatpay.TradeTypeJSAPI, Timeout: 2 * time.Second,
		},
	}
	local, err := storage.NewLocalStorage(cfg.Storage)
	require.NoError(t, err)

	app, err := NewBuilder(cfg).WithDB(mysqltest.NewDB(t)).WithStorage(local).Build(context.Background())
	require.NoError(t, err)
	require.NoError(t, app.Bootstrap(context.Background()))

	return &e2e{t: t, app: app, pay: cfg.WechatPay}
}

func (e *e2e) call(method, path, token string, body any, out any) int {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Handler().ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		var env envelope
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
		if len(env.Data) > 0 {
			require.NoError(e.t, json.Unmarshal(env.Data, out))
		}
	}
	return w.Code
}

func (e *e2e) login(path, username string) string {
	e.t.Helper()
	var res struct {
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	code := e.call(http.MethodPost, path, "", map[string]string{"username": username, "password": "secret123"}, &res)
	require.Equal(e.t, http.StatusOK, code)
	require.NotEmpty(e.t, res.Token.AccessToken)
	return res.Token.AccessToken
}

func TestApp_BookingPaidThroughWechatRecharge(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()

	admin := e.login("/api/v1/auth/admin/login", "root")
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"username": "alice", "password": "secret123"}, nil))
	alice := e.login("/api/v1/auth/login", "alice")

	var item struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/admin/services", admin,
		map[string]any{"name": "Bath", "kind": "base", "price": 8800, "is_active": true}, &item))

	var p struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/pets", alice,
		map[string]any{"name": "Mimi", "species": "cat"}, &p))

	var order struct {
		ID         string `json:"id"`
		TotalPrice int64  `json:"total_price"`
		IsPaid     bool   `json:"is_paid"`
	}
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/service-orders", alice, map[string]any{
		"pet_ids":         []string{p.ID},
		"base_service_id": item.ID,
		"appointment_at":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"contact_phone":   "13800138000",
	}, &order))
	assert.Equal(t, int64(8800), order.TotalPrice)

	assert.Equal(t, http.StatusBadRequest, e.call(http.MethodPost, "/api/v1/service-orders/"+order.ID+"/pay", alice, nil, nil),
		"empty wallet")

	var pay struct {
		OutTradeNo string `json:"out_trade_no"`
		TradeType  string `json:"trade_type"`
	}
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/payments/wechat", alice,
		map[string]any{"order_type": "recharge", "amount": 10000}, &pay))
	assert.Equal(t, wechatpay.TradeTypeNative, pay.TradeType, "no openid bound")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/wechat/notify",
		bytes.NewReader(wechatpaytest.PaidNotify(e.pay, pay.OutTradeNo, "tx-1", 10000)))
	w := httptest.NewRecorder()
	e.app.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "SUCCESS"), w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")

	require.Equal(t, http.StatusOK, e.call(http.MethodPost, "/api/v1/service-orders/"+order.ID+"/pay", alice, nil, &order))
	assert.True(t, order.IsPaid)

	var balance struct {
		Balance int64 `json:"balance"`
	}
	require.Equal(t, http.StatusOK, e.call(http.MethodGet, "/api/v1/wallet", alice, nil, &balance))
	assert.Equal(t, int64(1200), balance.Balance)

	_, err := e.app.worker.ProcessOnce(ctx)
	require.NoError(t, err)

	var summary struct {
		Integral int64 `json:"integral"`
	}
	require.Equal(t, http.StatusOK, e.call(http.MethodGet, "/api/v1/integral", alice, nil, &summary))
	assert.Equal(t, int64(100+88), summary.Integral, "register bonus plus one point per yuan")
}

func TestApp_AuthBoundaries(t *testing.T) {
	e := newE2E(t)
	require.Equal(t, http.StatusCreated, e.call(http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"username": "bob", "password": "secret123"}, nil))
	bob := e.login("/api/v1/auth/login", "bob")

	assert.Equal(t, http.StatusUnauthorized, e.call(http.MethodGet, "/api/v1/pets", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, e.call(http.MethodGet, "/api/v1/admin/users", bob, nil, nil))
	assert.Equal(t, http.StatusOK, e.call(http.MethodGet, "/api/v1/posts", "", nil, nil))
	assert.Equal(t, http.StatusOK, e.call(http.MethodGet, "/api/v1/health", "", nil, nil))
}
