package payment

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petcare/application/booking"
	"petcare/application/wallet"
	"petcare/config"
	"petcare/domain/bill"
	"petcare/domain/pet"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"
	"petcare/infrastructure/wechatpay"
	"petcare/infrastructure/wechatpay/wechatpaytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "192006250b4c09247ec02edce69f6a2d"

type fixture struct {
	svc     *ApplicationService
	booking *booking.ApplicationService
	pay     config.WechatPayConfig
	repos   *mysql.Repositories
	user    *user.User
	lastReq wechatpay.Params
}

// fakeGateway 模拟 unifiedorder，返回带签名的成功应答
func (f *fixture) fakeGateway(w http.ResponseWriter, r *http.Request) {
	var req wechatpay.Params
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.lastReq = req
	reply := wechatpay.Params{
		"return_code": "SUCCESS",
		"result_code": "SUCCESS",
		"prepay_id":   "wx-prepay-1",
		"code_url":    "weixin://wxpay/bizpayurl?pr=abc",
		"nonce_str":   "n1",
	}
	reply["sign"] = wechatpay.Sign(reply, apiKey)
	_ = xml.NewEncoder(w).Encode(reply)
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	f := &fixture{}
	srv := httptest.NewServer(http.HandlerFunc(f.fakeGateway))
	t.Cleanup(srv.Close)

	db := mysqltest.NewDB(t)
	repos := mysql.NewRepositories(db)
	uowFactory := mysqltest.NewUnitOfWorkFactory(db)
	walletSvc := wallet.NewApplicationService(repos.Users, repos.Bills)
	bookingSvc := booking.NewApplicationService(repos.ServiceItems, repos.Staff, repos.ServiceOrders, repos.Pets, walletSvc, uowFactory)
	payCfg := config.WechatPayConfig{
		AppID: "wx123", MchID: "m1", APIKey: apiKey,
		NotifyURL: "https://example.com/notify", Gateway: srv.URL,
		TradeType: wechatpay.TradeTypeJSAPI, Timeout: 2 * time.Second,
	}
	client := wechatpay.NewClient(payCfg)

	f.svc = NewApplicationService(client, repos.Users, repos.Bills, walletSvc, uowFactory, bookingSvc)
	f.booking = bookingSvc
	f.pay = payCfg
	f.repos = repos
	f.user = mysqltest.SeedUser(t, db, "payer", balance)
	return f
}

func (f *fixture) serviceOrder(t *testing.T) *booking.OrderResponse {
	t.Helper()
	ctx := context.Background()
	p, err := pet.NewPet(f.user.ID(), pet.Input{Name: "Mimi", Species: pet.SpeciesCat})
	require.NoError(t, err)
	require.NoError(t, f.repos.Pets.Save(ctx, p))
	item, err := f.booking.CreateServiceItem(ctx, booking.ServiceItemRequest{Name: "Wash", Kind: "base", Price: 6000, IsActive: true})
	require.NoError(t, err)
	o, err := f.booking.CreateOrder(ctx, f.user.ID(), booking.CreateOrderRequest{
		PetIDs: []string{p.ID}, BaseServiceID: item.ID,
		AppointmentAt: time.Now().Add(24 * time.Hour), ContactPhone: "13800138000",
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	u, err := f.repos.Users.FindByID(context.Background(), f.user.ID())
	require.NoError(t, err)
	return u.Balance()
}

func isSuccessAck(ack string) bool {
	return strings.Contains(ack, "<return_code>SUCCESS</return_code>")
}

func TestRecharge_NativeWithoutOpenID(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.user.ID(), "10.0.0.1", CreateRequest{OrderType: "recharge", Amount: 5000})
	require.NoError(t, err)
	assert.Equal(t, wechatpay.TradeTypeNative, res.TradeType)
	assert.Equal(t, "weixin://wxpay/bizpayurl?pr=abc", res.CodeURL)
	assert.Equal(t, "NATIVE", f.lastReq["trade_type"])
	assert.Equal(t, "5000", f.lastReq["total_fee"])

	notify := wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-1", 5000)
	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, notify)))
	assert.Equal(t, int64(5000), f.balance(t))

	// 重复通知不重复入账
	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, notify)))
	assert.Equal(t, int64(5000), f.balance(t))

	b, err := f.svc.Query(ctx, f.user.ID(), res.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, "success", b.Status)
	assert.Equal(t, "tx-1", b.TransactionID)

	_, err = f.svc.Query(ctx, "someone-else", res.OutTradeNo)
	assert.Error(t, err)
}

func TestNotify_RejectsBadSignatureAndAmount(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "recharge", Amount: 100})
	require.NoError(t, err)

	tampered := strings.Replace(string(wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-1", 100)), "<total_fee>100<", "<total_fee>1<", 1)
	assert.False(t, isSuccessAck(f.svc.HandleNotify(ctx, []byte(tampered))))

	wrongFee := wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-1", 99)
	assert.False(t, isSuccessAck(f.svc.HandleNotify(ctx, wrongFee)))
	assert.Zero(t, f.balance(t))

	b, err := f.repos.Bills.FindByOutTradeNo(ctx, res.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusPending, b.Status)
}

func TestServiceOrder_JSAPIAndSettle(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	u, err := f.repos.Users.FindByID(ctx, f.user.ID())
	require.NoError(t, err)
	u.BindOpenID("openid-1")
	require.NoError(t, f.repos.Users.Save(ctx, u))

	o := f.serviceOrder(t)
	res, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, wechatpay.TradeTypeJSAPI, res.TradeType)
	assert.Equal(t, int64(6000), res.Amount)
	assert.Equal(t, "prepay_id=wx-prepay-1", res.PayParams["package"])
	assert.NotEmpty(t, res.PayParams["paySign"])
	assert.Equal(t, "openid-1", f.lastReq["openid"])

	_, err = f.svc.Create(ctx, "someone-else", "", CreateRequest{OrderType: "service", OrderID: o.ID})
	assert.Error(t, err)

	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-9", 6000))))

	paid, err := f.booking.GetOrder(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	_, err = f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	assert.Error(t, err)
}

func TestNotify_LatePaymentIsRefundedToWallet(t *testing.T) {
	f := newFixture(t, 6000)
	ctx := context.Background()

	o := f.serviceOrder(t)
	res, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	require.NoError(t, err)

	// 余额支付会关闭未完成的微信账单
	_, err = f.booking.PayWithBalance(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Zero(t, f.balance(t))

	late := wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-late", 6000)
	for i := 0; i < 3; i++ {
		assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, late)))
		assert.Equal(t, int64(6000), f.balance(t), "notify %d refunds once", i)
	}

	b, err := f.repos.Bills.FindByOutTradeNo(ctx, res.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusSuccess, b.Status)
	assert.Equal(t, "tx-late", b.TransactionID)

	refunds, total, err := f.repos.Bills.List(ctx, bill.ListFilter{UserID: f.user.ID(), Type: bill.TypeRefund}, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(6000), refunds[0].Amount)
}

func TestNotify_SecondPendingBillIsRefunded(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	o := f.serviceOrder(t)
	first, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	require.NoError(t, err)

	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.PaidNotify(f.pay, first.OutTradeNo, "tx-1", 6000))))
	assert.Zero(t, f.balance(t))

	closed, err := f.repos.Bills.FindByOutTradeNo(ctx, second.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusClosed, closed.Status)

	notify := wechatpaytest.PaidNotify(f.pay, second.OutTradeNo, "tx-2", 6000)
	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, notify)))
	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, notify)))
	assert.Equal(t, int64(6000), f.balance(t))

	paid, err := f.booking.GetOrder(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
}

func TestNotify_OrderNoLongerPayableIsRefunded(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	o := f.serviceOrder(t)
	res, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service", OrderID: o.ID})
	require.NoError(t, err)

	// 订单被标记为已支付，但账单仍是 pending
	order, err := f.repos.ServiceOrders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.NoError(t, order.MarkPaid(time.Now()))
	require.NoError(t, f.repos.ServiceOrders.Save(ctx, order))

	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.PaidNotify(f.pay, res.OutTradeNo, "tx-3", 6000))))
	assert.Equal(t, int64(6000), f.balance(t))

	b, err := f.repos.Bills.FindByOutTradeNo(ctx, res.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusSuccess, b.Status)
	assert.Contains(t, b.Remark, "refunded")
}

func TestNotify_FailedPaymentMarksBill(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "recharge", Amount: 3000})
	require.NoError(t, err)

	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.FailedNotify(f.pay, res.OutTradeNo, "NOTENOUGH"))))

	b, err := f.repos.Bills.FindByOutTradeNo(ctx, res.OutTradeNo)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusFailed, b.Status)
	assert.Contains(t, b.Remark, "NOTENOUGH")
	assert.Zero(t, f.balance(t))

	// 未知订单号的失败通知同样应答成功
	assert.True(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.FailedNotify(f.pay, "unknown", "SYSTEMERROR"))))

	other := f.pay
	other.MchID = "m2"
	assert.False(t, isSuccessAck(f.svc.HandleNotify(ctx, wechatpaytest.FailedNotify(other, res.OutTradeNo, "NOTENOUGH"))))
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "recharge"})
	assert.Error(t, err)
	_, err = f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "mall", OrderID: "x"})
	assert.Error(t, err)
	_, err = f.svc.Create(ctx, f.user.ID(), "", CreateRequest{OrderType: "service"})
	assert.Error(t, err)
}
