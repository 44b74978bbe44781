package integral

import "time"

type ProductRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Cover       string `json:"cover" binding:"max=512"`
	Points      int64  `json:"points" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
	Kind        string `json:"kind" binding:"required,oneof=virtual physical"`
	Sort        int    `json:"sort"`
	IsActive    bool   `json:"is_active"`
}

// RedeemRequest 实物商品需要收货地址
type RedeemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=99"`
	AddressID string `json:"address_id"`
}

type ListOrdersRequest struct {
	UserID   string `form:"user_id"`
	Status   string `form:"status" binding:"omitempty,oneof=pending shipped completed"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ShipOrderRequest struct {
	TrackingNo string `json:"tracking_no" binding:"required,max=64"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cover       string    `json:"cover"`
	Points      int64     `json:"points"`
	Stock       int       `json:"stock"`
	Kind        string    `json:"kind"`
	Sort        int       `json:"sort"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID          string     `json:"id"`
	OrderNo     string     `json:"order_no"`
	UserID      string     `json:"user_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	Cover       string     `json:"cover"`
	Kind        string     `json:"kind"`
	Quantity    int        `json:"quantity"`
	Points      int64      `json:"points"`
	Address     string     `json:"address,omitempty"`
	RedeemCode  string     `json:"redeem_code,omitempty"`
	Status      string     `json:"status"`
	TrackingNo  string     `json:"tracking_no,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RecordResponse struct {
	ID           string    `json:"id"`
	Change       int64     `json:"change"`
	BalanceAfter int64     `json:"balance_after"`
	Reason       string    `json:"reason"`
	RefID        string    `json:"ref_id,omitempty"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SummaryResponse 积分首页：余额与签到情况
type SummaryResponse struct {
	Integral       int64 `json:"integral"`
	SignedInToday  bool  `json:"signed_in_today"`
	SignInsInMonth int64 `json:"sign_ins_in_month"`
	SignInPoints   int64 `json:"sign_in_points"`
}

type SignInResponse struct {
	Date     string `json:"date"`
	Points   int64  `json:"points"`
	Integral int64  `json:"integral"`
}
