package events

import (
	"context"
	"testing"
	"time"

	communityapp "petcare/application/community"
	integralapp "petcare/application/integral"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	community *communityapp.ApplicationService
	integral  *integralapp.ApplicationService
	repos     *mysql.Repositories
	worker    *mysql.OutboxWorker
	author    *user.User
	reader    *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := mysqltest.NewDB(t)
	repos := mysql.NewRepositories(db)
	uowFactory := mysqltest.NewUnitOfWorkFactory(db)

	communitySvc := communityapp.NewApplicationService(communityapp.Repositories{
		Topics:        repos.Topics,
		Posts:         repos.Posts,
		Comments:      repos.Comments,
		Reactions:     repos.Reactions,
		Follows:       repos.Follows,
		Notifications: repos.Notifications,
		Reports:       repos.Reports,
		Users:         repos.Users,
	}, nil, uowFactory)
	integralSvc := integralapp.NewApplicationService(integralapp.Repositories{
		Products:  repos.PointProducts,
		Orders:    repos.PointOrders,
		Records:   repos.PointRecords,
		SignIns:   repos.SignIns,
		Users:     repos.Users,
		Addresses: repos.Addresses,
	}, integralapp.Rules{PointsPerYuan: 1, SignInPoints: 5, RegisterPoints: 100}, uowFactory)

	bus := shared.NewEventBus()
	require.NoError(t, Register(bus, communitySvc, integralSvc))
	worker, err := mysql.NewOutboxWorker(repos.Outbox, NewDispatcher(bus), time.Second, 50, 3)
	require.NoError(t, err)

	return &fixture{
		community: communitySvc,
		integral:  integralSvc,
		repos:     repos,
		worker:    worker,
		author:    mysqltest.SeedUser(t, db, "author", 0),
		reader:    mysqltest.SeedUser(t, db, "reader", 0),
	}
}

func (f *fixture) drain(t *testing.T) int {
	t.Helper()
	n, err := f.worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	return n
}

func (f *fixture) integralOf(t *testing.T, userID string) int64 {
	t.Helper()
	s, err := f.integral.GetSummary(context.Background(), userID)
	require.NoError(t, err)
	return s.Integral
}

func TestCommunityEventsBecomeNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, err := f.community.CreateTopic(ctx, communityapp.TopicRequest{Name: "Dogs", IsActive: true})
	require.NoError(t, err)
	post, err := f.community.CreatePost(ctx, f.author.ID(), communityapp.PostRequest{TopicID: topic.ID, Title: "Walk", Content: "Morning walk"})
	require.NoError(t, err)
	approve := true
	_, err = f.community.ReviewPost(ctx, post.ID, communityapp.ReviewPostRequest{Approve: &approve})
	require.NoError(t, err)
	require.NoError(t, f.community.LikePost(ctx, f.reader.ID(), post.ID))
	require.NoError(t, f.community.Follow(ctx, f.reader.ID(), f.author.ID()))

	assert.GreaterOrEqual(t, f.drain(t), 3)

	unread, err := f.community.UnreadCount(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread.Unread)

	list, err := f.community.ListNotifications(ctx, f.author.ID(), communityapp.ListNotificationsRequest{})
	require.NoError(t, err)
	types := map[string]bool{}
	for _, n := range list.Items {
		types[n.Type] = true
	}
	assert.True(t, types["system"])
	assert.True(t, types["like"])
	assert.True(t, types["follow"])

	assert.Zero(t, f.drain(t))
}

func TestPaymentAndRegisterEventsAwardOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paid := &mall.OrderPaidEvent{EventBase: shared.NewEventBase("order-1"), OrderID: "order-1", OrderNo: "MO1", UserID: f.reader.ID(), Amount: 2590}
	registered := user.NewUserRegisteredEvent(f.reader.ID(), "reader")
	for i := 0; i < 2; i++ {
		require.NoError(t, f.repos.Outbox.SaveEvent(ctx, paid))
		require.NoError(t, f.repos.Outbox.SaveEvent(ctx, registered))
	}

	assert.Equal(t, 4, f.drain(t))
	assert.Equal(t, int64(125), f.integralOf(t, f.reader.ID()))
}

func TestDecode(t *testing.T) {
	_, err := Decode("unknown.event", "{}")
	assert.Error(t, err)

	_, err = Decode(mall.EventOrderPaid, "not json")
	assert.Error(t, err)

	event, err := Decode(mall.EventOrderPaid, `{"aggregate_id":"o1","occurred_on":"2026-01-02T03:04:05Z","order_id":"o1","user_id":"u1","amount":100}`)
	require.NoError(t, err)
	e, ok := event.(*mall.OrderPaidEvent)
	require.True(t, ok)
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, int64(100), e.Amount)
}

func TestDispatcherIgnoresUnsubscribedEvents(t *testing.T) {
	d := NewDispatcher(shared.NewEventBus())
	assert.NoError(t, d.Publish(context.Background(), "nobody.listens", "garbage"))
}
