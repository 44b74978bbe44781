// Package stray 流浪动物应用服务：上报、审核、附近搜索与互动。
package stray

import (
	"context"
	"math"
	"sort"

	"petcare/domain/shared"
	"petcare/domain/stray"
	"petcare/pkg/geo"
)

const (
	defaultNearbyLimit = 50
	// boxCandidates 矩形粗筛最多取出的行数
	boxCandidates = 500
)

type ApplicationService struct {
	repo       stray.Repository
	uowFactory shared.UnitOfWorkFactory
}

func NewApplicationService(repo stray.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{repo: repo, uowFactory: uowFactory}
}

func toInput(req StrayRequest) stray.Input {
	return stray.Input{
		Species:     req.Species,
		Description: req.Description,
		Images:      req.Images,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	}
}

func toStrayResponse(a *stray.Animal) *StrayResponse {
	images := a.Images
	if images == nil {
		images = []string{}
	}
	return &StrayResponse{
		ID:               a.ID,
		ReporterID:       a.ReporterID,
		Species:          a.Species,
		Description:      a.Description,
		Images:           images,
		Latitude:         a.Latitude,
		Longitude:        a.Longitude,
		Address:          a.Address,
		Status:           string(a.Status),
		RescueStatus:     string(a.RescueStatus),
		RejectReason:     a.RejectReason,
		LastSeenAt:       a.LastSeenAt,
		InteractionCount: a.InteractionCount,
		CreatedAt:        a.CreatedAt,
	}
}

func toInteractionResponse(i *stray.Interaction) *InteractionResponse {
	return &InteractionResponse{
		ID:        i.ID,
		StrayID:   i.StrayID,
		UserID:    i.UserID,
		Type:      string(i.Type),
		Content:   i.Content,
		Latitude:  i.Latitude,
		Longitude: i.Longitude,
		CreatedAt: i.CreatedAt,
	}
}

func (s *ApplicationService) list(ctx context.Context, filter stray.ListFilter, page shared.PageQuery) (shared.Page[*StrayResponse], error) {
	animals, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*StrayResponse]{}, err
	}
	return shared.MapPage(shared.Page[*stray.Animal]{Items: animals, Total: total, Page: page.Page, PageSize: page.PageSize}, toStrayResponse), nil
}

// List 公开列表只有审核通过的记录
func (s *ApplicationService) List(ctx context.Context, req ListStraysRequest) (shared.Page[*StrayResponse], error) {
	filter := stray.ListFilter{Species: req.Species, Status: stray.StatusApproved, RescueStatus: stray.RescueStatus(req.RescueStatus)}
	return s.list(ctx, filter, shared.NewPageQuery(req.Page, req.PageSize))
}

func (s *ApplicationService) ListMine(ctx context.Context, userID string, req ListStraysRequest) (shared.Page[*StrayResponse], error) {
	filter := stray.ListFilter{ReporterID: userID, Status: stray.Status(req.Status)}
	return s.list(ctx, filter, shared.NewPageQuery(req.Page, req.PageSize))
}

func (s *ApplicationService) AdminList(ctx context.Context, req ListStraysRequest) (shared.Page[*StrayResponse], error) {
	filter := stray.ListFilter{Species: req.Species, Status: stray.Status(req.Status), RescueStatus: stray.RescueStatus(req.RescueStatus)}
	return s.list(ctx, filter, shared.NewPageQuery(req.Page, req.PageSize))
}

// Nearby 先用经纬度矩形在库里粗筛，再按球面距离精确过滤并排序
func (s *ApplicationService) Nearby(ctx context.Context, req NearbyRequest) ([]*StrayResponse, error) {
	center := geo.Point{Lat: req.Latitude, Lng: req.Longitude}
	if !center.Valid() {
		return nil, shared.NewValidationError("stray", "lat", "coordinates out of range")
	}
	radius := stray.NormalizeRadius(req.RadiusKm)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	candidates, err := s.repo.ListInBox(ctx, geo.BoundingBox(center, radius), boxCandidates)
	if err != nil {
		return nil, err
	}
	nearby := make([]stray.Nearby, 0, len(candidates))
	for _, a := range candidates {
		d := geo.DistanceKm(center, a.Point())
		if d <= radius {
			nearby = append(nearby, stray.Nearby{Animal: a, DistanceKm: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	out := make([]*StrayResponse, len(nearby))
	for i, n := range nearby {
		resp := toStrayResponse(n.Animal)
		d := math.Round(n.DistanceKm*1000) / 1000
		resp.DistanceKm = &d
		out[i] = resp
	}
	return out, nil
}

func (s *ApplicationService) Get(ctx context.Context, viewerID, id string) (*StrayResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(viewerID) {
		return nil, shared.NewNotFoundError("stray")
	}
	return toStrayResponse(a), nil
}

func (s *ApplicationService) Create(ctx context.Context, reporterID string, req StrayRequest) (*StrayResponse, error) {
	a, err := stray.NewAnimal(reporterID, toInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return toStrayResponse(a), nil
}

func (s *ApplicationService) Update(ctx context.Context, reporterID, id string, req StrayRequest) (*StrayResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.OwnedBy(reporterID); err != nil {
		return nil, err
	}
	if err := a.Update(toInput(req)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return toStrayResponse(a), nil
}

// Delete reporterID 为空表示管理员删除
func (s *ApplicationService) Delete(ctx context.Context, reporterID, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reporterID != "" {
		if err := a.OwnedBy(reporterID); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *ApplicationService) Review(ctx context.Context, id string, req ReviewRequest) (*StrayResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Review(*req.Approve, req.Reason); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return toStrayResponse(a), nil
}

func (s *ApplicationService) UpdateRescueStatus(ctx context.Context, id string, req RescueRequest) (*StrayResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.SetRescueStatus(stray.RescueStatus(req.RescueStatus)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return toStrayResponse(a), nil
}

// AddInteraction 目击会同步更新最后出现位置，与互动记录同事务
func (s *ApplicationService) AddInteraction(ctx context.Context, userID, id string, req InteractionRequest) (*InteractionResponse, error) {
	var i *stray.Interaction
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		a, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		i, err = stray.NewInteraction(a, userID, stray.InteractionInput{
			Type:      stray.InteractionType(req.Type),
			Content:   req.Content,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			return err
		}
		if err := s.repo.SaveInteraction(ctx, i); err != nil {
			return err
		}
		return s.repo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toInteractionResponse(i), nil
}

func (s *ApplicationService) ListInteractions(ctx context.Context, viewerID, id string, page shared.PageQuery) (shared.Page[*InteractionResponse], error) {
	if _, err := s.Get(ctx, viewerID, id); err != nil {
		return shared.Page[*InteractionResponse]{}, err
	}
	items, total, err := s.repo.ListInteractions(ctx, id, page)
	if err != nil {
		return shared.Page[*InteractionResponse]{}, err
	}
	return shared.MapPage(shared.Page[*stray.Interaction]{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, toInteractionResponse), nil
}
