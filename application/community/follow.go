package community

import (
	"context"
	"errors"

	"petcare/domain/community"
	"petcare/domain/shared"
	"petcare/domain/user"
)

// Follow 关注用户，双方计数器同事务更新
func (s *ApplicationService) Follow(ctx context.Context, followerID, followeeID string) error {
	f, err := community.NewFollow(followerID, followeeID)
	if err != nil {
		return err
	}
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		target, err := s.userRepo.FindByID(ctx, followeeID)
		if err != nil {
			return err
		}
		if !target.IsActive() {
			return user.NewUserNotFoundError()
		}
		if err := s.followRepo.Add(ctx, f); err != nil {
			return err
		}
		if err := s.adjustFollowCounters(ctx, followerID, followeeID, 1); err != nil {
			return err
		}
		uow.RegisterNew(f)
		return nil
	})
}

func (s *ApplicationService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if err := s.followRepo.Remove(ctx, followerID, followeeID); err != nil {
			return err
		}
		return s.adjustFollowCounters(ctx, followerID, followeeID, -1)
	})
}

func (s *ApplicationService) adjustFollowCounters(ctx context.Context, followerID, followeeID string, delta int) error {
	if err := s.userRepo.AdjustCounter(ctx, followerID, user.CounterFollowing, delta); err != nil {
		return err
	}
	return s.userRepo.AdjustCounter(ctx, followeeID, user.CounterFollowers, delta)
}

func (s *ApplicationService) FollowStatus(ctx context.Context, followerID, followeeID string) (*FollowStatusResponse, error) {
	following, err := s.followRepo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	return &FollowStatusResponse{Following: following}, nil
}

func (s *ApplicationService) ListFollowers(ctx context.Context, userID string, page shared.PageQuery) (shared.Page[*UserBrief], error) {
	ids, total, err := s.followRepo.ListFollowers(ctx, userID, page)
	if err != nil {
		return shared.Page[*UserBrief]{}, err
	}
	return s.briefPage(ctx, ids, total, page)
}

func (s *ApplicationService) ListFollowing(ctx context.Context, userID string, page shared.PageQuery) (shared.Page[*UserBrief], error) {
	ids, total, err := s.followRepo.ListFollowing(ctx, userID, page)
	if err != nil {
		return shared.Page[*UserBrief]{}, err
	}
	return s.briefPage(ctx, ids, total, page)
}

// briefPage 已删除的账号直接跳过
func (s *ApplicationService) briefPage(ctx context.Context, ids []string, total int64, page shared.PageQuery) (shared.Page[*UserBrief], error) {
	items := make([]*UserBrief, 0, len(ids))
	for _, id := range ids {
		u, err := s.userRepo.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return shared.Page[*UserBrief]{}, err
		}
		items = append(items, toUserBrief(u))
	}
	return shared.Page[*UserBrief]{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}
