package community

import (
	"context"
	"errors"
	"testing"

	"petcare/domain/community"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"
	"petcare/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc    *ApplicationService
	db     *gorm.DB
	repos  *mysql.Repositories
	author *user.User
	reader *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := mysqltest.NewDB(t)
	repos := mysql.NewRepositories(db)
	svc := NewApplicationService(Repositories{
		Topics:        repos.Topics,
		Posts:         repos.Posts,
		Comments:      repos.Comments,
		Reactions:     repos.Reactions,
		Follows:       repos.Follows,
		Notifications: repos.Notifications,
		Reports:       repos.Reports,
		Users:         repos.Users,
	}, nil, mysqltest.NewUnitOfWorkFactory(db))
	return &fixture{
		svc:    svc,
		db:     db,
		repos:  repos,
		author: mysqltest.SeedUser(t, db, "author", 0),
		reader: mysqltest.SeedUser(t, db, "reader", 0),
	}
}

// approvedPost 发帖并审核通过
func (f *fixture) approvedPost(t *testing.T, topicID string) *PostResponse {
	t.Helper()
	ctx := context.Background()
	p, err := f.svc.CreatePost(ctx, f.author.ID(), PostRequest{TopicID: topicID, Title: "My cat", Content: "Look at her"})
	require.NoError(t, err)
	approve := true
	p, err = f.svc.ReviewPost(ctx, p.ID, ReviewPostRequest{Approve: &approve})
	require.NoError(t, err)
	return p
}

func (f *fixture) events(t *testing.T, eventType, aggregateID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&po.OutboxEventPO{}).
		Where("event_type = ? AND aggregate_id = ?", eventType, aggregateID).Count(&n).Error)
	return n
}

func TestPostModeration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	topic, err := f.svc.CreateTopic(ctx, TopicRequest{Name: "Cats", IsActive: true})
	require.NoError(t, err)

	p, err := f.svc.CreatePost(ctx, f.author.ID(), PostRequest{TopicID: topic.ID, Title: "Hello", Content: "First post"})
	require.NoError(t, err)
	assert.Equal(t, "pending", p.Status)

	// 待审核帖子对他人不可见
	_, err = f.svc.GetPost(ctx, f.reader.ID(), f.reader.ID(), p.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	_, err = f.svc.GetPost(ctx, f.author.ID(), f.author.ID(), p.ID)
	require.NoError(t, err)

	public, err := f.svc.ListPosts(ctx, "", ListPostsRequest{})
	require.NoError(t, err)
	assert.Zero(t, public.Total)

	approve := true
	reviewed, err := f.svc.ReviewPost(ctx, p.ID, ReviewPostRequest{Approve: &approve})
	require.NoError(t, err)
	assert.Equal(t, "approved", reviewed.Status)
	assert.Equal(t, int64(1), f.events(t, community.EventPostReviewed, p.ID))

	_, err = f.svc.ReviewPost(ctx, p.ID, ReviewPostRequest{Approve: &approve})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	got, err := f.svc.GetTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PostCount)

	author, err := f.repos.Users.FindByID(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, author.PostCount())

	viewed, err := f.svc.GetPost(ctx, f.reader.ID(), f.reader.ID(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.ViewCount)

	// 编辑后重新审核，话题计数回退
	edited, err := f.svc.UpdatePost(ctx, f.author.ID(), p.ID, PostRequest{TopicID: topic.ID, Title: "Hello again", Content: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, "pending", edited.Status)
	got, err = f.svc.GetTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Zero(t, got.PostCount)

	_, err = f.svc.UpdatePost(ctx, f.reader.ID(), p.ID, PostRequest{Title: "x", Content: "y"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestCreatePostInClosedTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic, err := f.svc.CreateTopic(ctx, TopicRequest{Name: "Archived", IsActive: false})
	require.NoError(t, err)

	_, err = f.svc.CreatePost(ctx, f.author.ID(), PostRequest{TopicID: topic.ID, Title: "t", Content: "c"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	active, err := f.svc.ListTopics(ctx, true, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Zero(t, active.Total)
}

func TestLikeAndFavorite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedPost(t, "")

	require.NoError(t, f.svc.LikePost(ctx, f.reader.ID(), p.ID))
	err := f.svc.LikePost(ctx, f.reader.ID(), p.ID)
	assert.True(t, errors.Is(err, shared.ErrConflict))
	require.NoError(t, f.svc.FavoritePost(ctx, f.reader.ID(), p.ID))

	got, err := f.svc.GetPost(ctx, f.reader.ID(), "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)
	assert.Equal(t, 1, got.FavoriteCount)
	assert.True(t, got.Liked)
	assert.True(t, got.Favorited)
	assert.Equal(t, int64(1), f.events(t, community.EventPostLiked, p.ID))

	favorites, err := f.svc.ListFavorites(ctx, f.reader.ID(), shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, favorites.Items, 1)

	require.NoError(t, f.svc.UnlikePost(ctx, f.reader.ID(), p.ID))
	err = f.svc.UnlikePost(ctx, f.reader.ID(), p.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	require.NoError(t, f.svc.UnfavoritePost(ctx, f.reader.ID(), p.ID))

	got, err = f.svc.GetPost(ctx, f.reader.ID(), "", p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.LikeCount)
	assert.Zero(t, got.FavoriteCount)
	assert.False(t, got.Liked)
}

func TestSelfLikeRecordsNoEvent(t *testing.T) {
	f := newFixture(t)
	p := f.approvedPost(t, "")

	require.NoError(t, f.svc.LikePost(context.Background(), f.author.ID(), p.ID))
	assert.Zero(t, f.events(t, community.EventPostLiked, p.ID))
}

func TestCannotReactToPendingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.svc.CreatePost(ctx, f.author.ID(), PostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.True(t, errors.Is(f.svc.LikePost(ctx, f.reader.ID(), p.ID), shared.ErrNotFound))
	_, err = f.svc.CreateComment(ctx, f.reader.ID(), p.ID, CommentRequest{Content: "hi"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedPost(t, "")

	root, err := f.svc.CreateComment(ctx, f.reader.ID(), p.ID, CommentRequest{Content: "Cute!"})
	require.NoError(t, err)
	reply, err := f.svc.CreateComment(ctx, f.author.ID(), p.ID, CommentRequest{Content: "Thanks", ParentID: root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, reply.ParentID)
	assert.Equal(t, int64(2), f.events(t, community.EventPostCommented, p.ID))

	require.NoError(t, f.svc.LikeComment(ctx, f.author.ID(), root.ID))
	list, err := f.svc.ListComments(ctx, f.author.ID(), p.ID, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	for _, c := range list.Items {
		if c.ID == root.ID {
			assert.True(t, c.Liked)
			assert.Equal(t, 1, c.LikeCount)
		}
	}

	got, err := f.svc.GetPost(ctx, "", "", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentCount)

	err = f.svc.DeleteComment(ctx, f.author.ID(), root.ID)
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	// 删除根评论会带走回复
	require.NoError(t, f.svc.DeleteComment(ctx, f.reader.ID(), root.ID))
	got, err = f.svc.GetPost(ctx, "", "", p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CommentCount)
}

func TestReplyToCommentOnAnotherPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.approvedPost(t, "")
	second := f.approvedPost(t, "")

	c, err := f.svc.CreateComment(ctx, f.reader.ID(), first.ID, CommentRequest{Content: "one"})
	require.NoError(t, err)
	_, err = f.svc.CreateComment(ctx, f.reader.ID(), second.ID, CommentRequest{Content: "two", ParentID: c.ID})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestDeletePostByAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedPost(t, "")
	_, err := f.svc.CreateComment(ctx, f.reader.ID(), p.ID, CommentRequest{Content: "hi"})
	require.NoError(t, err)

	assert.True(t, errors.Is(f.svc.DeletePost(ctx, f.reader.ID(), p.ID), shared.ErrForbidden))
	require.NoError(t, f.svc.DeletePost(ctx, "", p.ID))

	var comments int64
	require.NoError(t, f.db.Model(&po.CommentPO{}).Where("post_id = ?", p.ID).Count(&comments).Error)
	assert.Zero(t, comments)
	author, err := f.repos.Users.FindByID(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Zero(t, author.PostCount())
}

func TestFollowAndFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.approvedPost(t, "")

	feed, err := f.svc.Feed(ctx, f.reader.ID(), shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Zero(t, feed.Total)

	assert.True(t, errors.Is(f.svc.Follow(ctx, f.reader.ID(), f.reader.ID()), shared.ErrInvalidInput))
	require.NoError(t, f.svc.Follow(ctx, f.reader.ID(), f.author.ID()))
	assert.True(t, errors.Is(f.svc.Follow(ctx, f.reader.ID(), f.author.ID()), shared.ErrConflict))
	assert.Equal(t, int64(1), f.events(t, community.EventUserFollowed, f.author.ID()))

	status, err := f.svc.FollowStatus(ctx, f.reader.ID(), f.author.ID())
	require.NoError(t, err)
	assert.True(t, status.Following)

	followers, err := f.svc.ListFollowers(ctx, f.author.ID(), shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, followers.Items, 1)
	assert.Equal(t, f.reader.ID(), followers.Items[0].ID)

	author, err := f.repos.Users.FindByID(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, author.FollowerCount())

	feed, err = f.svc.Feed(ctx, f.reader.ID(), shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed.Total)

	require.NoError(t, f.svc.Unfollow(ctx, f.reader.ID(), f.author.ID()))
	assert.True(t, errors.Is(f.svc.Unfollow(ctx, f.reader.ID(), f.author.ID()), shared.ErrNotFound))
	reader, err := f.repos.Users.FindByID(ctx, f.reader.ID())
	require.NoError(t, err)
	assert.Zero(t, reader.FollowingCount())
}

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n := community.NewNotification(f.author.ID(), f.reader.ID(), community.NotificationFollow, "user", f.reader.ID(), "")
	require.NoError(t, f.svc.Notify(ctx, n))
	// 自己触发的不通知
	require.NoError(t, f.svc.Notify(ctx, community.NewNotification(f.author.ID(), f.author.ID(), community.NotificationLike, "post", "p", "")))

	count, err := f.svc.UnreadCount(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Unread)

	assert.True(t, errors.Is(f.svc.MarkNotificationRead(ctx, f.reader.ID(), n.ID), shared.ErrNotFound))
	require.NoError(t, f.svc.MarkNotificationRead(ctx, f.author.ID(), n.ID))

	unread, err := f.svc.ListNotifications(ctx, f.author.ID(), ListNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	assert.Zero(t, unread.Total)

	require.NoError(t, f.svc.Notify(ctx, community.NewNotification(f.author.ID(), "", community.NotificationSystem, "", "", "welcome")))
	marked, err := f.svc.MarkAllNotificationsRead(ctx, f.author.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)
}

func TestReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedPost(t, "")

	_, err := f.svc.CreateReport(ctx, f.reader.ID(), ReportRequest{TargetType: "post", TargetID: "missing", Reason: "spam"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	r, err := f.svc.CreateReport(ctx, f.reader.ID(), ReportRequest{TargetType: "post", TargetID: p.ID, Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, "pending", r.Status)

	pending, err := f.svc.ListReports(ctx, ListReportsRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Total)

	handled, err := f.svc.HandleReport(ctx, "admin-1", r.ID, HandleReportRequest{Status: "resolved", Note: "removed"})
	require.NoError(t, err)
	assert.Equal(t, "resolved", handled.Status)

	_, err = f.svc.HandleReport(ctx, "admin-1", r.ID, HandleReportRequest{Status: "dismissed"})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestTopicNameUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateTopic(ctx, TopicRequest{Name: "Dogs", IsActive: true})
	require.NoError(t, err)
	_, err = f.svc.CreateTopic(ctx, TopicRequest{Name: "Dogs", IsActive: true})
	assert.True(t, errors.Is(err, shared.ErrConflict))
}
