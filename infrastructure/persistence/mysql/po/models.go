package po

// All lists every persistence object, in migration order.
func All() []any {
	return []any{
		&UserPO{}, &AdminPO{}, &AddressPO{},
		&PetPO{},
		&ServiceItemPO{}, &StaffPO{}, &ServiceOrderPO{},
		&BillPO{},
		&TopicPO{}, &PostPO{}, &CommentPO{}, &ReactionPO{}, &FollowPO{}, &NotificationPO{}, &ReportPO{},
		&CategoryPO{}, &ProductPO{}, &SKUPO{}, &CartItemPO{}, &MallOrderPO{}, &MallOrderItemPO{},
		&IntegralProductPO{}, &IntegralOrderPO{}, &IntegralRecordPO{}, &SignInPO{},
		&StrayAnimalPO{}, &StrayInteractionPO{},
		&FeedbackPO{}, &BannerPO{},
		&OutboxEventPO{},
	}
}
