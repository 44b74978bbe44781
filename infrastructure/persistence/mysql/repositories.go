package mysql

import "gorm.io/gorm"

// Repositories bundles every GORM repository over one connection.
type Repositories struct {
	Users         *UserRepository
	Admins        *AdminRepository
	Addresses     *AddressRepository
	Pets          *PetRepository
	ServiceItems  *ServiceItemRepository
	Staff         *StaffRepository
	ServiceOrders *ServiceOrderRepository
	Bills         *BillRepository
	Topics        *TopicRepository
	Posts         *PostRepository
	Comments      *CommentRepository
	Reactions     *ReactionRepository
	Follows       *FollowRepository
	Notifications *NotificationRepository
	Reports       *ReportRepository
	Categories    *CategoryRepository
	Products      *ProductRepository
	SKUs          *SKURepository
	Cart          *CartRepository
	MallOrders    *MallOrderRepository
	PointProducts *IntegralProductRepository
	PointOrders   *IntegralOrderRepository
	PointRecords  *IntegralRecordRepository
	SignIns       *SignInRepository
	Strays        *StrayRepository
	Feedback      *FeedbackRepository
	Banners       *BannerRepository
	Outbox        *OutboxRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Admins:        NewAdminRepository(db),
		Addresses:     NewAddressRepository(db),
		Pets:          NewPetRepository(db),
		ServiceItems:  NewServiceItemRepository(db),
		Staff:         NewStaffRepository(db),
		ServiceOrders: NewServiceOrderRepository(db),
		Bills:         NewBillRepository(db),
		Topics:        NewTopicRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Reactions:     NewReactionRepository(db),
		Follows:       NewFollowRepository(db),
		Notifications: NewNotificationRepository(db),
		Reports:       NewReportRepository(db),
		Categories:    NewCategoryRepository(db),
		Products:      NewProductRepository(db),
		SKUs:          NewSKURepository(db),
		Cart:          NewCartRepository(db),
		MallOrders:    NewMallOrderRepository(db),
		PointProducts: NewIntegralProductRepository(db),
		PointOrders:   NewIntegralOrderRepository(db),
		PointRecords:  NewIntegralRecordRepository(db),
		SignIns:       NewSignInRepository(db),
		Strays:        NewStrayRepository(db),
		Feedback:      NewFeedbackRepository(db),
		Banners:       NewBannerRepository(db),
		Outbox:        NewOutboxRepository(db),
	}
}
