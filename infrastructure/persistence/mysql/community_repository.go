package mysql

import (
	"context"
	"errors"
	"time"

	"petcare/domain/community"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type TopicRepository struct {
	baseRepository
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{baseRepository{db: db}}
}

func (r *TopicRepository) Save(ctx context.Context, t *community.Topic) error {
	err := upsert(r.getDB(ctx), po.FromTopicDomain(t), t.ID, "post_count")
	if isDuplicateKeyError(err) {
		return shared.NewConflictError("topic", "topic name already exists: "+t.Name)
	}
	return err
}

func (r *TopicRepository) FindByID(ctx context.Context, id string) (*community.Topic, error) {
	topicPO, err := first[po.TopicPO](r.getDB(ctx).Where("id = ?", id), "topic")
	if err != nil {
		return nil, err
	}
	return topicPO.ToDomain(), nil
}

func (r *TopicRepository) List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*community.Topic, int64, error) {
	query := r.getDB(ctx).Model(&po.TopicPO{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	rows, total, err := paginate[po.TopicPO](query, page, "sort ASC, post_count DESC")
	if err != nil {
		return nil, 0, err
	}
	topics := make([]*community.Topic, len(rows))
	for i := range rows {
		topics[i] = rows[i].ToDomain()
	}
	return topics, total, nil
}

func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.TopicPO](r.getDB(ctx), id, "topic")
}

func (r *TopicRepository) AdjustPostCount(ctx context.Context, id string, delta int) error {
	return incrementColumn[po.TopicPO](r.getDB(ctx), id, "post_count", int64(delta))
}

var _ community.TopicRepository = (*TopicRepository)(nil)

type PostRepository struct {
	baseRepository
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{baseRepository{db: db}}
}

func (r *PostRepository) Save(ctx context.Context, p *community.Post) error {
	return upsert(r.getDB(ctx), po.FromPostDomain(p), p.ID, po.PostCounterColumns...)
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*community.Post, error) {
	postPO, err := first[po.PostPO](r.getDB(ctx).Where("id = ?", id), "post")
	if err != nil {
		return nil, err
	}
	return postPO.ToDomain(), nil
}

func postOrder(order community.PostOrder) string {
	if order == community.PostOrderHot {
		return "like_count + comment_count * 2 DESC, created_at DESC"
	}
	return "created_at DESC"
}

func (r *PostRepository) List(ctx context.Context, filter community.PostFilter, page shared.PageQuery) ([]*community.Post, int64, error) {
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return []*community.Post{}, 0, nil
	}

	query := r.getDB(ctx).Model(&po.PostPO{})
	if filter.TopicID != "" {
		query = query.Where("topic_id = ?", filter.TopicID)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.AuthorIDs) > 0 {
		query = query.Where("author_id IN ?", filter.AuthorIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Keyword != "" {
		like := likePattern(filter.Keyword)
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	rows, total, err := paginate[po.PostPO](query, page, postOrder(filter.Order))
	if err != nil {
		return nil, 0, err
	}
	return toPosts(rows), total, nil
}

// ListFavoritedBy lists approved posts the user favorited, latest favorite first.
func (r *PostRepository) ListFavoritedBy(ctx context.Context, userID string, page shared.PageQuery) ([]*community.Post, int64, error) {
	query := r.getDB(ctx).Model(&po.PostPO{}).
		Joins("JOIN reactions ON reactions.target_id = posts.id").
		Where("reactions.kind = ? AND reactions.user_id = ?", string(community.ReactionPostFavorite), userID).
		Where("posts.status = ?", string(community.PostApproved))

	rows, total, err := paginate[po.PostPO](query, page, "reactions.created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	return toPosts(rows), total, nil
}

func toPosts(rows []po.PostPO) []*community.Post {
	posts := make([]*community.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].ToDomain()
	}
	return posts
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.PostPO](r.getDB(ctx), id, "post")
}

func (r *PostRepository) AdjustCounter(ctx context.Context, id string, counter community.PostCounter, delta int) error {
	switch counter {
	case community.PostLikes, community.PostComments, community.PostFavorites, community.PostViews:
	default:
		return errors.New("unknown post counter: " + string(counter))
	}
	return incrementColumn[po.PostPO](r.getDB(ctx), id, string(counter), int64(delta))
}

var _ community.PostRepository = (*PostRepository)(nil)

type CommentRepository struct {
	baseRepository
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{baseRepository{db: db}}
}

func (r *CommentRepository) Save(ctx context.Context, c *community.Comment) error {
	return upsert(r.getDB(ctx), po.FromCommentDomain(c), c.ID, "like_count")
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*community.Comment, error) {
	commentPO, err := first[po.CommentPO](r.getDB(ctx).Where("id = ?", id), "comment")
	if err != nil {
		return nil, err
	}
	return commentPO.ToDomain(), nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string, page shared.PageQuery) ([]*community.Comment, int64, error) {
	query := r.getDB(ctx).Model(&po.CommentPO{}).Where("post_id = ?", postID)
	rows, total, err := paginate[po.CommentPO](query, page, "created_at ASC")
	if err != nil {
		return nil, 0, err
	}
	comments := make([]*community.Comment, len(rows))
	for i := range rows {
		comments[i] = rows[i].ToDomain()
	}
	return comments, total, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.getDB(ctx).Where("id = ? OR parent_id = ?", id, id).Delete(&po.CommentPO{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, shared.NewNotFoundError("comment")
	}
	return result.RowsAffected, nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	return r.getDB(ctx).Where("post_id = ?", postID).Delete(&po.CommentPO{}).Error
}

func (r *CommentRepository) AdjustLikeCount(ctx context.Context, id string, delta int) error {
	return incrementColumn[po.CommentPO](r.getDB(ctx), id, "like_count", int64(delta))
}

var _ community.CommentRepository = (*CommentRepository)(nil)

type ReactionRepository struct {
	baseRepository
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{baseRepository{db: db}}
}

func (r *ReactionRepository) Add(ctx context.Context, kind community.ReactionKind, userID, targetID string) error {
	row := &po.ReactionPO{Kind: string(kind), UserID: userID, TargetID: targetID, CreatedAt: time.Now()}
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewConflictError("reaction", "already "+reactionVerb(kind))
		}
		return err
	}
	return nil
}

func reactionVerb(kind community.ReactionKind) string {
	if kind == community.ReactionPostFavorite {
		return "favorited"
	}
	return "liked"
}

func (r *ReactionRepository) Remove(ctx context.Context, kind community.ReactionKind, userID, targetID string) error {
	result := r.getDB(ctx).
		Where("kind = ? AND user_id = ? AND target_id = ?", string(kind), userID, targetID).
		Delete(&po.ReactionPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("reaction")
	}
	return nil
}

func (r *ReactionRepository) Reacted(ctx context.Context, kind community.ReactionKind, userID string, targetIDs []string) (map[string]bool, error) {
	reacted := make(map[string]bool, len(targetIDs))
	if userID == "" || len(targetIDs) == 0 {
		return reacted, nil
	}
	var ids []string
	err := r.getDB(ctx).Model(&po.ReactionPO{}).
		Where("kind = ? AND user_id = ? AND target_id IN ?", string(kind), userID, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reacted[id] = true
	}
	return reacted, nil
}

var _ community.ReactionRepository = (*ReactionRepository)(nil)

type FollowRepository struct {
	baseRepository
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{baseRepository{db: db}}
}

func (r *FollowRepository) Add(ctx context.Context, f *community.Follow) error {
	row := &po.FollowPO{FollowerID: f.FollowerID, FolloweeID: f.FolloweeID, CreatedAt: f.CreatedAt}
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewConflictError("follow", "already following")
		}
		return err
	}
	return nil
}

func (r *FollowRepository) Remove(ctx context.Context, followerID, followeeID string) error {
	result := r.getDB(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&po.FollowPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("follow")
	}
	return nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.FollowPO{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.getDB(ctx).Model(&po.FollowPO{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID string, page shared.PageQuery) ([]string, int64, error) {
	return r.listIDs(ctx, "followee_id", "follower_id", userID, page)
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID string, page shared.PageQuery) ([]string, int64, error) {
	return r.listIDs(ctx, "follower_id", "followee_id", userID, page)
}

func (r *FollowRepository) listIDs(ctx context.Context, matchColumn, pickColumn, userID string, page shared.PageQuery) ([]string, int64, error) {
	query := r.getDB(ctx).Model(&po.FollowPO{}).Where(matchColumn+" = ?", userID)
	rows, total, err := paginate[po.FollowPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		if pickColumn == "follower_id" {
			ids[i] = row.FollowerID
		} else {
			ids[i] = row.FolloweeID
		}
	}
	return ids, total, nil
}

var _ community.FollowRepository = (*FollowRepository)(nil)

type NotificationRepository struct {
	baseRepository
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{baseRepository{db: db}}
}

func (r *NotificationRepository) Save(ctx context.Context, n *community.Notification) error {
	return upsert(r.getDB(ctx), po.FromNotificationDomain(n), n.ID)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*community.Notification, error) {
	row, err := first[po.NotificationPO](r.getDB(ctx).Where("id = ?", id), "notification")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *NotificationRepository) List(ctx context.Context, recipientID string, unreadOnly bool, page shared.PageQuery) ([]*community.Notification, int64, error) {
	query := r.getDB(ctx).Model(&po.NotificationPO{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	rows, total, err := paginate[po.NotificationPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	items := make([]*community.Notification, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.NotificationPO{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.NotificationPO{}).Where("id = ?", id).UpdateColumn("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.NotificationPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError("notification")
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result := r.getDB(ctx).Model(&po.NotificationPO{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}

var _ community.NotificationRepository = (*NotificationRepository)(nil)

type ReportRepository struct {
	baseRepository
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{baseRepository{db: db}}
}

func (r *ReportRepository) Save(ctx context.Context, report *community.Report) error {
	return upsert(r.getDB(ctx), po.FromReportDomain(report), report.ID)
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*community.Report, error) {
	row, err := first[po.ReportPO](r.getDB(ctx).Where("id = ?", id), "report")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ReportRepository) List(ctx context.Context, filter community.ReportFilter, page shared.PageQuery) ([]*community.Report, int64, error) {
	query := r.getDB(ctx).Model(&po.ReportPO{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", string(filter.TargetType))
	}
	rows, total, err := paginate[po.ReportPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	reports := make([]*community.Report, len(rows))
	for i := range rows {
		reports[i] = rows[i].ToDomain()
	}
	return reports, total, nil
}

var _ community.ReportRepository = (*ReportRepository)(nil)
