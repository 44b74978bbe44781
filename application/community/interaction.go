package community

import (
	"context"

	"petcare/domain/community"
	"petcare/domain/shared"
)

// approvedPost 只有公开的帖子可以互动
func (s *ApplicationService) approvedPost(ctx context.Context, postID string) (*community.Post, error) {
	p, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.RequireApproved(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ApplicationService) LikePost(ctx context.Context, userID, postID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.approvedPost(ctx, postID)
		if err != nil {
			return err
		}
		if err := s.reactionRepo.Add(ctx, community.ReactionPostLike, userID, postID); err != nil {
			return err
		}
		if err := s.postRepo.AdjustCounter(ctx, postID, community.PostLikes, 1); err != nil {
			return err
		}
		p.RecordLiked(userID)
		uow.RegisterDirty(p)
		return nil
	})
}

func (s *ApplicationService) UnlikePost(ctx context.Context, userID, postID string) error {
	return s.removeReaction(ctx, community.ReactionPostLike, userID, postID, func(ctx context.Context) error {
		return s.postRepo.AdjustCounter(ctx, postID, community.PostLikes, -1)
	})
}

func (s *ApplicationService) FavoritePost(ctx context.Context, userID, postID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if _, err := s.approvedPost(ctx, postID); err != nil {
			return err
		}
		if err := s.reactionRepo.Add(ctx, community.ReactionPostFavorite, userID, postID); err != nil {
			return err
		}
		return s.postRepo.AdjustCounter(ctx, postID, community.PostFavorites, 1)
	})
}

func (s *ApplicationService) UnfavoritePost(ctx context.Context, userID, postID string) error {
	return s.removeReaction(ctx, community.ReactionPostFavorite, userID, postID, func(ctx context.Context) error {
		return s.postRepo.AdjustCounter(ctx, postID, community.PostFavorites, -1)
	})
}

// removeReaction 取消不存在的关系返回 404
func (s *ApplicationService) removeReaction(ctx context.Context, kind community.ReactionKind, userID, targetID string, adjust func(context.Context) error) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if err := s.reactionRepo.Remove(ctx, kind, userID, targetID); err != nil {
			return err
		}
		return adjust(ctx)
	})
}

func (s *ApplicationService) ListComments(ctx context.Context, viewerID, postID string, page shared.PageQuery) (shared.Page[*CommentResponse], error) {
	if _, err := s.approvedPost(ctx, postID); err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	comments, total, err := s.commentRepo.ListByPost(ctx, postID, page)
	if err != nil {
		return shared.Page[*CommentResponse]{}, err
	}
	out := shared.MapPage(shared.Page[*community.Comment]{Items: comments, Total: total, Page: page.Page, PageSize: page.PageSize}, toCommentResponse)
	if viewerID != "" && len(out.Items) > 0 {
		ids := make([]string, len(out.Items))
		for i, c := range out.Items {
			ids[i] = c.ID
		}
		liked, err := s.reactionRepo.Reacted(ctx, community.ReactionCommentLike, viewerID, ids)
		if err != nil {
			return shared.Page[*CommentResponse]{}, err
		}
		for _, c := range out.Items {
			c.Liked = liked[c.ID]
		}
	}
	return out, nil
}

// CreateComment 评论或回复，帖子评论数同事务 +1
func (s *ApplicationService) CreateComment(ctx context.Context, authorID, postID string, req CommentRequest) (*CommentResponse, error) {
	var c *community.Comment
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.postRepo.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		var parent *community.Comment
		if req.ParentID != "" {
			if parent, err = s.commentRepo.FindByID(ctx, req.ParentID); err != nil {
				return err
			}
		}
		c, err = community.NewComment(p, authorID, req.Content, parent)
		if err != nil {
			return err
		}
		if err := s.commentRepo.Save(ctx, c); err != nil {
			return err
		}
		if err := s.postRepo.AdjustCounter(ctx, postID, community.PostComments, 1); err != nil {
			return err
		}
		uow.RegisterNew(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

// DeleteComment 连同回复一起删除；authorID 为空表示管理员操作
func (s *ApplicationService) DeleteComment(ctx context.Context, authorID, commentID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		c, err := s.commentRepo.FindByID(ctx, commentID)
		if err != nil {
			return err
		}
		if authorID != "" {
			if err := c.OwnedBy(authorID); err != nil {
				return err
			}
		}
		removed, err := s.commentRepo.Delete(ctx, c.ID)
		if err != nil {
			return err
		}
		return s.postRepo.AdjustCounter(ctx, c.PostID, community.PostComments, -int(removed))
	})
}

func (s *ApplicationService) LikeComment(ctx context.Context, userID, commentID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
			return err
		}
		if err := s.reactionRepo.Add(ctx, community.ReactionCommentLike, userID, commentID); err != nil {
			return err
		}
		return s.commentRepo.AdjustLikeCount(ctx, commentID, 1)
	})
}

func (s *ApplicationService) UnlikeComment(ctx context.Context, userID, commentID string) error {
	return s.removeReaction(ctx, community.ReactionCommentLike, userID, commentID, func(ctx context.Context) error {
		return s.commentRepo.AdjustLikeCount(ctx, commentID, -1)
	})
}
