package community

import (
	"context"

	"petcare/domain/community"
	"petcare/domain/shared"
)

// CreateReport 举报帖子、评论或用户，目标必须存在
func (s *ApplicationService) CreateReport(ctx context.Context, reporterID string, req ReportRequest) (*ReportResponse, error) {
	r, err := community.NewReport(reporterID, community.ReportTarget(req.TargetType), req.TargetID, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.checkReportTarget(ctx, r.TargetType, r.TargetID); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return toReportResponse(r), nil
}

func (s *ApplicationService) checkReportTarget(ctx context.Context, target community.ReportTarget, id string) error {
	var err error
	switch target {
	case community.ReportTargetPost:
		_, err = s.postRepo.FindByID(ctx, id)
	case community.ReportTargetComment:
		_, err = s.commentRepo.FindByID(ctx, id)
	case community.ReportTargetUser:
		_, err = s.userRepo.FindByID(ctx, id)
	}
	return err
}

func (s *ApplicationService) ListReports(ctx context.Context, req ListReportsRequest) (shared.Page[*ReportResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	filter := community.ReportFilter{Status: community.ReportStatus(req.Status), TargetType: community.ReportTarget(req.TargetType)}
	reports, total, err := s.reportRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*ReportResponse]{}, err
	}
	return shared.MapPage(shared.Page[*community.Report]{Items: reports, Total: total, Page: page.Page, PageSize: page.PageSize}, toReportResponse), nil
}

func (s *ApplicationService) HandleReport(ctx context.Context, adminID, reportID string, req HandleReportRequest) (*ReportResponse, error) {
	r, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := r.Handle(adminID, community.ReportStatus(req.Status), req.Note); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return toReportResponse(r), nil
}
