package community

import (
	"context"

	"petcare/domain/community"
	"petcare/domain/shared"
)

func (s *ApplicationService) ListTopics(ctx context.Context, activeOnly bool, page shared.PageQuery) (shared.Page[*TopicResponse], error) {
	topics, total, err := s.topicRepo.List(ctx, activeOnly, page)
	if err != nil {
		return shared.Page[*TopicResponse]{}, err
	}
	return shared.MapPage(shared.Page[*community.Topic]{Items: topics, Total: total, Page: page.Page, PageSize: page.PageSize}, toTopicResponse), nil
}

func (s *ApplicationService) GetTopic(ctx context.Context, id string) (*TopicResponse, error) {
	t, err := s.topicRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTopicResponse(t), nil
}

func (s *ApplicationService) CreateTopic(ctx context.Context, req TopicRequest) (*TopicResponse, error) {
	t, err := community.NewTopic(toTopicInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.topicRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return toTopicResponse(t), nil
}

func (s *ApplicationService) UpdateTopic(ctx context.Context, id string, req TopicRequest) (*TopicResponse, error) {
	t, err := s.topicRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Update(toTopicInput(req)); err != nil {
		return nil, err
	}
	if err := s.topicRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return toTopicResponse(t), nil
}

func (s *ApplicationService) DeleteTopic(ctx context.Context, id string) error {
	return s.topicRepo.Delete(ctx, id)
}
