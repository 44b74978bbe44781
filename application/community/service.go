/*
Package community 社区应用服务：帖子、评论、点赞收藏、关注、通知、举报与话题。

计数器（点赞数、评论数、粉丝数等）与关系行在同一事务内变更；
通知由 outbox 中的领域事件异步生成，这里只负责记录事件。
*/
package community

import (
	"context"

	"petcare/domain/community"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"

	"go.uber.org/zap"
)

// ViewTracker 浏览去重，未启用 Redis 时为 nil，每次浏览都计数
type ViewTracker interface {
	FirstView(ctx context.Context, postID, viewer string) (bool, error)
}

type ApplicationService struct {
	topicRepo        community.TopicRepository
	postRepo         community.PostRepository
	commentRepo      community.CommentRepository
	reactionRepo     community.ReactionRepository
	followRepo       community.FollowRepository
	notificationRepo community.NotificationRepository
	reportRepo       community.ReportRepository
	userRepo         user.Repository
	views            ViewTracker
	uowFactory       shared.UnitOfWorkFactory
}

type Repositories struct {
	Topics        community.TopicRepository
	Posts         community.PostRepository
	Comments      community.CommentRepository
	Reactions     community.ReactionRepository
	Follows       community.FollowRepository
	Notifications community.NotificationRepository
	Reports       community.ReportRepository
	Users         user.Repository
}

func NewApplicationService(repos Repositories, views ViewTracker, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		topicRepo:        repos.Topics,
		postRepo:         repos.Posts,
		commentRepo:      repos.Comments,
		reactionRepo:     repos.Reactions,
		followRepo:       repos.Follows,
		notificationRepo: repos.Notifications,
		reportRepo:       repos.Reports,
		userRepo:         repos.Users,
		views:            views,
		uowFactory:       uowFactory,
	}
}

// ListPosts 公开列表，只返回已通过审核的帖子
func (s *ApplicationService) ListPosts(ctx context.Context, viewerID string, req ListPostsRequest) (shared.Page[*PostResponse], error) {
	filter := community.PostFilter{
		TopicID:  req.TopicID,
		AuthorID: req.AuthorID,
		Status:   community.PostApproved,
		Keyword:  req.Keyword,
		Order:    community.PostOrder(req.Order),
	}
	return s.listPosts(ctx, viewerID, filter, shared.NewPageQuery(req.Page, req.PageSize))
}

// ListMyPosts 作者本人可以看到待审核和被驳回的帖子
func (s *ApplicationService) ListMyPosts(ctx context.Context, userID string, req ListPostsRequest) (shared.Page[*PostResponse], error) {
	filter := community.PostFilter{AuthorID: userID, Status: community.PostStatus(req.Status)}
	return s.listPosts(ctx, userID, filter, shared.NewPageQuery(req.Page, req.PageSize))
}

// AdminListPosts 审核后台，按状态筛选
func (s *ApplicationService) AdminListPosts(ctx context.Context, req ListPostsRequest) (shared.Page[*PostResponse], error) {
	filter := community.PostFilter{
		TopicID:  req.TopicID,
		AuthorID: req.AuthorID,
		Status:   community.PostStatus(req.Status),
		Keyword:  req.Keyword,
	}
	return s.listPosts(ctx, "", filter, shared.NewPageQuery(req.Page, req.PageSize))
}

// Feed 关注的人发布的帖子
func (s *ApplicationService) Feed(ctx context.Context, userID string, page shared.PageQuery) (shared.Page[*PostResponse], error) {
	ids, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return shared.Page[*PostResponse]{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	filter := community.PostFilter{AuthorIDs: ids, Status: community.PostApproved}
	return s.listPosts(ctx, userID, filter, page)
}

func (s *ApplicationService) ListFavorites(ctx context.Context, userID string, page shared.PageQuery) (shared.Page[*PostResponse], error) {
	posts, total, err := s.postRepo.ListFavoritedBy(ctx, userID, page)
	if err != nil {
		return shared.Page[*PostResponse]{}, err
	}
	return s.postPage(ctx, userID, posts, total, page)
}

func (s *ApplicationService) listPosts(ctx context.Context, viewerID string, filter community.PostFilter, page shared.PageQuery) (shared.Page[*PostResponse], error) {
	posts, total, err := s.postRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*PostResponse]{}, err
	}
	return s.postPage(ctx, viewerID, posts, total, page)
}

func (s *ApplicationService) postPage(ctx context.Context, viewerID string, posts []*community.Post, total int64, page shared.PageQuery) (shared.Page[*PostResponse], error) {
	out := shared.MapPage(shared.Page[*community.Post]{Items: posts, Total: total, Page: page.Page, PageSize: page.PageSize}, toPostResponse)
	if err := s.markReactions(ctx, viewerID, out.Items); err != nil {
		return shared.Page[*PostResponse]{}, err
	}
	return out, nil
}

// markReactions 填充当前用户的点赞/收藏状态
func (s *ApplicationService) markReactions(ctx context.Context, viewerID string, posts []*PostResponse) error {
	if viewerID == "" || len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, err := s.reactionRepo.Reacted(ctx, community.ReactionPostLike, viewerID, ids)
	if err != nil {
		return err
	}
	favorited, err := s.reactionRepo.Reacted(ctx, community.ReactionPostFavorite, viewerID, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.Liked = liked[p.ID]
		p.Favorited = favorited[p.ID]
	}
	return nil
}

// GetPost 浏览数 +1；viewerKey 是去重用的身份（用户 id 或客户端 IP）
func (s *ApplicationService) GetPost(ctx context.Context, viewerID, viewerKey, postID string) (*PostResponse, error) {
	p, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID) {
		return nil, shared.NewNotFoundError("post")
	}

	if p.Status == community.PostApproved && s.countView(ctx, postID, viewerKey) {
		if err := s.postRepo.AdjustCounter(ctx, postID, community.PostViews, 1); err != nil {
			return nil, err
		}
		p.ViewCount++
	}

	resp := toPostResponse(p)
	if err := s.markReactions(ctx, viewerID, []*PostResponse{resp}); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ApplicationService) countView(ctx context.Context, postID, viewerKey string) bool {
	if s.views == nil || viewerKey == "" {
		return true
	}
	first, err := s.views.FirstView(ctx, postID, viewerKey)
	if err != nil {
		logger.FromContext(ctx).Warn("View dedupe unavailable", zap.Error(err))
		return true
	}
	return first
}

func (s *ApplicationService) checkTopic(ctx context.Context, topicID string) error {
	if topicID == "" {
		return nil
	}
	t, err := s.topicRepo.FindByID(ctx, topicID)
	if err != nil {
		return err
	}
	if !t.IsActive {
		return shared.NewValidationError("post", "topic_id", "topic is closed")
	}
	return nil
}

// CreatePost 新帖进入待审核状态
func (s *ApplicationService) CreatePost(ctx context.Context, authorID string, req PostRequest) (*PostResponse, error) {
	if err := s.checkTopic(ctx, req.TopicID); err != nil {
		return nil, err
	}
	p, err := community.NewPost(authorID, community.PostInput{
		TopicID: req.TopicID, Title: req.Title, Content: req.Content, Images: req.Images,
	})
	if err != nil {
		return nil, err
	}
	err = s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if err := s.postRepo.Save(ctx, p); err != nil {
			return err
		}
		return s.userRepo.AdjustCounter(ctx, authorID, user.CounterPosts, 1)
	})
	if err != nil {
		return nil, err
	}
	return toPostResponse(p), nil
}

// UpdatePost 编辑后重新进入审核
func (s *ApplicationService) UpdatePost(ctx context.Context, authorID, postID string, req PostRequest) (*PostResponse, error) {
	if err := s.checkTopic(ctx, req.TopicID); err != nil {
		return nil, err
	}
	var p *community.Post
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.postRepo.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := p.OwnedBy(authorID); err != nil {
			return err
		}
		wasApproved, oldTopic := p.Status == community.PostApproved, p.TopicID
		if err := p.Edit(community.PostInput{TopicID: req.TopicID, Title: req.Title, Content: req.Content, Images: req.Images}); err != nil {
			return err
		}
		if err := s.postRepo.Save(ctx, p); err != nil {
			return err
		}
		if wasApproved && oldTopic != "" {
			return s.topicRepo.AdjustPostCount(ctx, oldTopic, -1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPostResponse(p), nil
}

// DeletePost 删除帖子及其评论，作者本人或管理员（authorID 为空）可删
func (s *ApplicationService) DeletePost(ctx context.Context, authorID, postID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		p, err := s.postRepo.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if authorID != "" {
			if err := p.OwnedBy(authorID); err != nil {
				return err
			}
		}
		if err := s.commentRepo.DeleteByPost(ctx, p.ID); err != nil {
			return err
		}
		if err := s.postRepo.Delete(ctx, p.ID); err != nil {
			return err
		}
		if p.Status == community.PostApproved && p.TopicID != "" {
			if err := s.topicRepo.AdjustPostCount(ctx, p.TopicID, -1); err != nil {
				return err
			}
		}
		return s.userRepo.AdjustCounter(ctx, p.AuthorID, user.CounterPosts, -1)
	})
}

// ReviewPost 只有待审核的帖子可以审核，通过后计入话题帖子数
func (s *ApplicationService) ReviewPost(ctx context.Context, postID string, req ReviewPostRequest) (*PostResponse, error) {
	var p *community.Post
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.postRepo.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := p.Review(*req.Approve, req.Reason); err != nil {
			return err
		}
		if err := s.postRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		if p.Status == community.PostApproved && p.TopicID != "" {
			return s.topicRepo.AdjustPostCount(ctx, p.TopicID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Post reviewed",
		zap.String("post_id", postID), zap.String("status", string(p.Status)))
	return toPostResponse(p), nil
}
