package mall

import "time"

type CategoryRequest struct {
	Name     string `json:"name" binding:"required,max=32"`
	Icon     string `json:"icon" binding:"max=512"`
	Sort     int    `json:"sort"`
	IsActive bool   `json:"is_active"`
}

type ProductRequest struct {
	CategoryID  string   `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required,max=100"`
	Subtitle    string   `json:"subtitle" binding:"max=255"`
	Description string   `json:"description" binding:"max=10000"`
	Cover       string   `json:"cover" binding:"max=512"`
	Images      []string `json:"images" binding:"max=9,dive,max=512"`
	IsOnSale    bool     `json:"is_on_sale"`
}

type SKURequest struct {
	Attributes map[string]string `json:"attributes"`
	Price      int64             `json:"price" binding:"required,min=1"`
	Stock      int               `json:"stock" binding:"min=0"`
}

type ListProductsRequest struct {
	CategoryID string `form:"category_id"`
	Keyword    string `form:"keyword"`
	Order      string `form:"order" binding:"omitempty,oneof=newest price_asc price_desc sales"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type AddCartRequest struct {
	SKUID    string `json:"sku_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}

type OrderLineRequest struct {
	SKUID    string `json:"sku_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
}

// CreateOrderRequest 直接购买传 items，从购物车结算传 cart_item_ids
type CreateOrderRequest struct {
	Items       []OrderLineRequest `json:"items" binding:"omitempty,dive"`
	CartItemIDs []string           `json:"cart_item_ids"`
	AddressID   string             `json:"address_id" binding:"required"`
	Remark      string             `json:"remark" binding:"max=500"`
}

type ListOrdersRequest struct {
	UserID   string `form:"user_id"`
	Status   string `form:"status" binding:"omitempty,oneof=pending_payment paid shipped completed cancelled"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type ShipOrderRequest struct {
	ShippingCompany string `json:"shipping_company" binding:"required,max=64"`
	TrackingNo      string `json:"tracking_no" binding:"required,max=64"`
}

type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Sort     int    `json:"sort"`
	IsActive bool   `json:"is_active"`
}

type SKUResponse struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"product_id"`
	Attributes map[string]string `json:"attributes"`
	Label      string            `json:"label"`
	Price      int64             `json:"price"`
	Stock      int               `json:"stock"`
	Sales      int               `json:"sales"`
}

type ProductResponse struct {
	ID          string         `json:"id"`
	CategoryID  string         `json:"category_id"`
	Name        string         `json:"name"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description,omitempty"`
	Cover       string         `json:"cover"`
	Images      []string       `json:"images"`
	Price       int64          `json:"price"`
	Sales       int            `json:"sales"`
	IsOnSale    bool           `json:"is_on_sale"`
	SKUs        []*SKUResponse `json:"skus,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CartItemResponse 带上 SKU 的当前价格和库存，商品已删除时 Available 为 false
type CartItemResponse struct {
	ID          string `json:"id"`
	SKUID       string `json:"sku_id"`
	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	SKULabel    string `json:"sku_label,omitempty"`
	Cover       string `json:"cover,omitempty"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Quantity    int    `json:"quantity"`
	Available   bool   `json:"available"`
}

type CartResponse struct {
	Items []*CartItemResponse `json:"items"`
	Total int64               `json:"total"`
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	SKUID       string `json:"sku_id"`
	ProductName string `json:"product_name"`
	SKULabel    string `json:"sku_label"`
	Cover       string `json:"cover"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNo         string               `json:"order_no"`
	UserID          string               `json:"user_id"`
	Items           []*OrderItemResponse `json:"items"`
	TotalAmount     int64                `json:"total_amount"`
	Address         string               `json:"address"`
	Remark          string               `json:"remark,omitempty"`
	Status          string               `json:"status"`
	ShippingCompany string               `json:"shipping_company,omitempty"`
	TrackingNo      string               `json:"tracking_no,omitempty"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	ShippedAt       *time.Time           `json:"shipped_at,omitempty"`
	CompletedAt     *time.Time           `json:"completed_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}
