package community

import (
	"petcare/domain/community"
	"petcare/domain/user"
)

func toPostResponse(p *community.Post) *PostResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &PostResponse{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		TopicID:       p.TopicID,
		Title:         p.Title,
		Content:       p.Content,
		Images:        images,
		Status:        string(p.Status),
		RejectReason:  p.RejectReason,
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		FavoriteCount: p.FavoriteCount,
		ViewCount:     p.ViewCount,
		ReviewedAt:    p.ReviewedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toCommentResponse(c *community.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
	}
}

func toUserBrief(u *user.User) *UserBrief {
	return &UserBrief{ID: u.ID(), Nickname: u.Nickname(), Avatar: u.Avatar()}
}

func toNotificationResponse(n *community.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:         n.ID,
		ActorID:    n.ActorID,
		Type:       string(n.Type),
		TargetType: n.TargetType,
		TargetID:   n.TargetID,
		Content:    n.Content,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

func toReportResponse(r *community.Report) *ReportResponse {
	return &ReportResponse{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		TargetType:  string(r.TargetType),
		TargetID:    r.TargetID,
		Reason:      r.Reason,
		Status:      string(r.Status),
		HandlerID:   r.HandlerID,
		HandlerNote: r.HandlerNote,
		HandledAt:   r.HandledAt,
		CreatedAt:   r.CreatedAt,
	}
}

func toTopicResponse(t *community.Topic) *TopicResponse {
	return &TopicResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Cover:       t.Cover,
		PostCount:   t.PostCount,
		Sort:        t.Sort,
		IsActive:    t.IsActive,
	}
}

func toTopicInput(req TopicRequest) community.TopicInput {
	return community.TopicInput{
		Name:        req.Name,
		Description: req.Description,
		Cover:       req.Cover,
		Sort:        req.Sort,
		IsActive:    req.IsActive,
	}
}
