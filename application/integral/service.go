/*
Package integral 积分商城应用服务：积分商品、兑换订单、积分流水与每日签到。

积分变动一律走 user.Repository.AdjustIntegral 的条件更新，
并在同一事务里写一条流水，流水的 balance_after 取更新后的余额。
*/
package integral

import (
	"context"
	"time"

	"petcare/domain/integral"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"

	"go.uber.org/zap"
)

// Rules 积分规则，来自配置
type Rules struct {
	PointsPerYuan  int64
	SignInPoints   int64
	RegisterPoints int64
}

type ApplicationService struct {
	productRepo integral.ProductRepository
	orderRepo   integral.OrderRepository
	recordRepo  integral.RecordRepository
	signInRepo  integral.SignInRepository
	userRepo    user.Repository
	addressRepo user.AddressRepository
	rules       Rules
	uowFactory  shared.UnitOfWorkFactory
	now         func() time.Time
}

type Repositories struct {
	Products  integral.ProductRepository
	Orders    integral.OrderRepository
	Records   integral.RecordRepository
	SignIns   integral.SignInRepository
	Users     user.Repository
	Addresses user.AddressRepository
}

func NewApplicationService(repos Repositories, rules Rules, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		productRepo: repos.Products,
		orderRepo:   repos.Orders,
		recordRepo:  repos.Records,
		signInRepo:  repos.SignIns,
		userRepo:    repos.Users,
		addressRepo: repos.Addresses,
		rules:       rules,
		uowFactory:  uowFactory,
		now:         time.Now,
	}
}

// adjust 变更积分并记流水，调用方负责事务
func (s *ApplicationService) adjust(ctx context.Context, userID string, change int64, reason integral.Reason, refID, remark string) (int64, error) {
	after, err := s.userRepo.AdjustIntegral(ctx, userID, change)
	if err != nil {
		return 0, err
	}
	if err := s.recordRepo.Save(ctx, integral.NewRecord(userID, change, after, reason, refID, remark)); err != nil {
		return 0, err
	}
	return after, nil
}

func (s *ApplicationService) GetSummary(ctx context.Context, userID string) (*SummaryResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := integral.SignInDate(now)
	signed, err := s.signInRepo.Exists(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	monthStart := integral.SignInDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	inMonth, err := s.signInRepo.CountSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		Integral:       u.Integral(),
		SignedInToday:  signed,
		SignInsInMonth: inMonth,
		SignInPoints:   s.rules.SignInPoints,
	}, nil
}

func (s *ApplicationService) ListRecords(ctx context.Context, userID string, page shared.PageQuery) (shared.Page[*RecordResponse], error) {
	records, total, err := s.recordRepo.List(ctx, userID, page)
	if err != nil {
		return shared.Page[*RecordResponse]{}, err
	}
	return shared.MapPage(shared.Page[*integral.Record]{Items: records, Total: total, Page: page.Page, PageSize: page.PageSize}, toRecordResponse), nil
}

// SignIn 每个自然日一次，重复签到由唯一键返回冲突
func (s *ApplicationService) SignIn(ctx context.Context, userID string) (*SignInResponse, error) {
	signIn := integral.NewSignIn(userID, s.rules.SignInPoints, s.now())
	var after int64
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		if err := s.signInRepo.Create(ctx, signIn); err != nil {
			return err
		}
		if signIn.Points <= 0 {
			u, err := s.userRepo.FindByID(ctx, userID)
			if err != nil {
				return err
			}
			after = u.Integral()
			return nil
		}
		var err error
		after, err = s.adjust(ctx, userID, signIn.Points, integral.ReasonSignIn, signIn.Date, "daily sign-in")
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SignInResponse{Date: signIn.Date, Points: signIn.Points, Integral: after}, nil
}

// Award 发放积分，同一 (用户, 原因, 关联单号) 只发一次，返回是否实际发放
func (s *ApplicationService) Award(ctx context.Context, userID string, points int64, reason integral.Reason, refID, remark string) (bool, error) {
	if points <= 0 {
		return false, nil
	}
	awarded := false
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		exists, err := s.recordRepo.ExistsByRef(ctx, userID, reason, refID)
		if err != nil || exists {
			return err
		}
		if _, err := s.adjust(ctx, userID, points, reason, refID, remark); err != nil {
			return err
		}
		awarded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if awarded {
		logger.FromContext(ctx).Info("Integral awarded",
			zap.String("user_id", userID), zap.Int64("points", points), zap.String("reason", string(reason)))
	}
	return awarded, nil
}

// AwardForPayment 按实付金额折算积分
func (s *ApplicationService) AwardForPayment(ctx context.Context, userID string, amountFen int64, orderID string) (bool, error) {
	return s.Award(ctx, userID, integral.RewardPoints(amountFen, s.rules.PointsPerYuan), integral.ReasonOrderReward, orderID, "order paid")
}

func (s *ApplicationService) AwardForRegister(ctx context.Context, userID string) (bool, error) {
	return s.Award(ctx, userID, s.rules.RegisterPoints, integral.ReasonRegister, userID, "welcome")
}
