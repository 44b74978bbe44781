package cmd

import (
	attachapp "petcare/application/attach"
	bookingapp "petcare/application/booking"
	communityapp "petcare/application/community"
	"petcare/application/events"
	feedbackapp "petcare/application/feedback"
	integralapp "petcare/application/integral"
	mallapp "petcare/application/mall"
	paymentapp "petcare/application/payment"
	petapp "petcare/application/pet"
	strayapp "petcare/application/stray"
	userapp "petcare/application/user"
	walletapp "petcare/application/wallet"
	"petcare/config"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql"
	"petcare/pkg/storage"
	"petcare/pkg/token"
)

// Services 所有应用服务，HTTP 进程和 outbox worker 共用同一套装配
type Services struct {
	User      *userapp.ApplicationService
	Pet       *petapp.ApplicationService
	Wallet    *walletapp.ApplicationService
	Booking   *bookingapp.ApplicationService
	Community *communityapp.ApplicationService
	Mall      *mallapp.ApplicationService
	Integral  *integralapp.ApplicationService
	Stray     *strayapp.ApplicationService
	Feedback  *feedbackapp.ApplicationService
	Attach    *attachapp.ApplicationService
	Payment   *paymentapp.ApplicationService
}

// Infra 外部依赖，可选的留 nil
type Infra struct {
	Tokens  *token.Manager
	Views   communityapp.ViewTracker
	Storage storage.Provider
	Gateway paymentapp.Gateway
}

func NewServices(cfg *config.Config, repos *mysql.Repositories, uowFactory shared.UnitOfWorkFactory, infra Infra) *Services {
	wallet := walletapp.NewApplicationService(repos.Users, repos.Bills)
	booking := bookingapp.NewApplicationService(repos.ServiceItems, repos.Staff, repos.ServiceOrders, repos.Pets, wallet, uowFactory)
	mall := mallapp.NewApplicationService(mallapp.Repositories{
		Categories: repos.Categories,
		Products:   repos.Products,
		SKUs:       repos.SKUs,
		Cart:       repos.Cart,
		Orders:     repos.MallOrders,
		Addresses:  repos.Addresses,
	}, wallet, uowFactory)

	community := communityapp.NewApplicationService(communityapp.Repositories{
		Topics:        repos.Topics,
		Posts:         repos.Posts,
		Comments:      repos.Comments,
		Reactions:     repos.Reactions,
		Follows:       repos.Follows,
		Notifications: repos.Notifications,
		Reports:       repos.Reports,
		Users:         repos.Users,
	}, infra.Views, uowFactory)
	integral := integralapp.NewApplicationService(integralapp.Repositories{
		Products:  repos.PointProducts,
		Orders:    repos.PointOrders,
		Records:   repos.PointRecords,
		SignIns:   repos.SignIns,
		Users:     repos.Users,
		Addresses: repos.Addresses,
	}, integralapp.Rules{
		PointsPerYuan:  cfg.Integral.PointsPerYuan,
		SignInPoints:   cfg.Integral.SignInPoints,
		RegisterPoints: cfg.Integral.RegisterPoints,
	}, uowFactory)

	s := &Services{
		User:      userapp.NewApplicationService(repos.Users, repos.Admins, repos.Addresses, infra.Tokens, uowFactory),
		Pet:       petapp.NewApplicationService(repos.Pets),
		Wallet:    wallet,
		Booking:   booking,
		Community: community,
		Mall:      mall,
		Integral:  integral,
		Stray:     strayapp.NewApplicationService(repos.Strays, uowFactory),
		Feedback:  feedbackapp.NewApplicationService(repos.Feedback),
	}

	if infra.Storage != nil {
		s.Attach = attachapp.NewApplicationService(repos.Banners, infra.Storage, cfg.Storage.MaxSizeBytes)
	}
	if infra.Gateway != nil {
		s.Payment = paymentapp.NewApplicationService(infra.Gateway, repos.Users, repos.Bills, wallet, uowFactory, booking, mall)
	}
	return s
}

// NewEventDispatcher 订阅站内通知和积分奖励，供 outbox worker 投递
func NewEventDispatcher(s *Services) (*events.Dispatcher, error) {
	bus := shared.NewEventBus()
	if err := events.Register(bus, s.Community, s.Integral); err != nil {
		return nil, err
	}
	return events.NewDispatcher(bus), nil
}
