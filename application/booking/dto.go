package booking

import "time"

type ServiceItemRequest struct {
	Name            string `json:"name" binding:"required,max=64"`
	Kind            string `json:"kind" binding:"required,oneof=base additional"`
	Price           int64  `json:"price" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0"`
	Description     string `json:"description" binding:"max=1000"`
	Image           string `json:"image" binding:"max=512"`
	Sort            int    `json:"sort"`
	IsActive        bool   `json:"is_active"`
}

type ListServiceItemsRequest struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=base additional"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type StaffRequest struct {
	Name     string `json:"name" binding:"required,max=32"`
	Title    string `json:"title" binding:"max=32"`
	Phone    string `json:"phone" binding:"max=20"`
	Avatar   string `json:"avatar" binding:"max=512"`
	Intro    string `json:"intro" binding:"max=500"`
	IsActive bool   `json:"is_active"`
}

// CreateOrderRequest 预约下单
type CreateOrderRequest struct {
	PetIDs               []string  `json:"pet_ids" binding:"required,min=1,dive,required"`
	BaseServiceID        string    `json:"base_service_id" binding:"required"`
	AdditionalServiceIDs []string  `json:"additional_service_ids"`
	AppointmentAt        time.Time `json:"appointment_at" binding:"required"`
	ContactPhone         string    `json:"contact_phone" binding:"required,max=20"`
	Remark               string    `json:"remark" binding:"max=500"`
}

type ListOrdersRequest struct {
	UserID   string `form:"user_id"`
	StaffID  string `form:"staff_id"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed in_progress completed cancelled"`
	Reason string `json:"reason" binding:"max=255"`
}

type AssignStaffRequest struct {
	StaffID string `json:"staff_id" binding:"required"`
}

type ServiceItemResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	Sort            int       `json:"sort"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type StaffResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar"`
	Intro    string `json:"intro"`
	IsActive bool   `json:"is_active"`
}

type ServiceLineResponse struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

type OrderResponse struct {
	ID                 string                `json:"id"`
	OrderNo            string                `json:"order_no"`
	UserID             string                `json:"user_id"`
	StaffID            string                `json:"staff_id,omitempty"`
	PetIDs             []string              `json:"pet_ids"`
	BaseService        ServiceLineResponse   `json:"base_service"`
	AdditionalServices []ServiceLineResponse `json:"additional_services"`
	AppointmentAt      time.Time             `json:"appointment_at"`
	ContactPhone       string                `json:"contact_phone"`
	Remark             string                `json:"remark"`
	BasePrice          int64                 `json:"base_price"`
	AdditionalPrice    int64                 `json:"additional_price"`
	TotalPrice         int64                 `json:"total_price"`
	Status             string                `json:"status"`
	IsPaid             bool                  `json:"is_paid"`
	PaidAt             *time.Time            `json:"paid_at,omitempty"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}
