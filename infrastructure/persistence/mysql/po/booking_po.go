package po

import (
	"time"

	"petcare/domain/booking"

	"gorm.io/datatypes"
)

type ServiceItemPO struct {
	ID              string    `gorm:"primaryKey;size:64"`
	Name            string    `gorm:"size:64;not null"`
	Kind            string    `gorm:"size:16;index;not null"`
	Price           int64     `gorm:"not null"`
	DurationMinutes int       `gorm:"not null;default:0"`
	Description     string    `gorm:"size:1000"`
	Image           string    `gorm:"size:500"`
	Sort            int       `gorm:"default:0"`
	IsActive        bool      `gorm:"default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (ServiceItemPO) TableName() string {
	return "service_items"
}

func FromServiceItemDomain(s *booking.ServiceItem) *ServiceItemPO {
	return &ServiceItemPO{
		ID:              s.ID,
		Name:            s.Name,
		Kind:            string(s.Kind),
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		Image:           s.Image,
		Sort:            s.Sort,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (po *ServiceItemPO) ToDomain() *booking.ServiceItem {
	return &booking.ServiceItem{
		ID:              po.ID,
		Name:            po.Name,
		Kind:            booking.ItemKind(po.Kind),
		Price:           po.Price,
		DurationMinutes: po.DurationMinutes,
		Description:     po.Description,
		Image:           po.Image,
		Sort:            po.Sort,
		IsActive:        po.IsActive,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
}

type StaffPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:64;not null"`
	Title     string    `gorm:"size:64"`
	Phone     string    `gorm:"size:20"`
	Avatar    string    `gorm:"size:500"`
	Intro     string    `gorm:"size:1000"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StaffPO) TableName() string {
	return "staff"
}

func FromStaffDomain(s *booking.Staff) *StaffPO {
	return &StaffPO{
		ID:        s.ID,
		Name:      s.Name,
		Title:     s.Title,
		Phone:     s.Phone,
		Avatar:    s.Avatar,
		Intro:     s.Intro,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (po *StaffPO) ToDomain() *booking.Staff {
	return &booking.Staff{
		ID:        po.ID,
		Name:      po.Name,
		Title:     po.Title,
		Phone:     po.Phone,
		Avatar:    po.Avatar,
		Intro:     po.Intro,
		IsActive:  po.IsActive,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

// ServiceLineJSON is a priced service line stored inside the order row.
type ServiceLineJSON struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// ServiceOrderPO stores prices as snapshots; totals are recomputed on load.
type ServiceOrderPO struct {
	ID              string                               `gorm:"primaryKey;size:64"`
	OrderNo         string                               `gorm:"size:32;uniqueIndex;not null"`
	UserID          string                               `gorm:"size:64;index;not null"`
	StaffID         string                               `gorm:"size:64;index"`
	PetIDs          datatypes.JSONSlice[string]          `gorm:"type:json"`
	BaseService     datatypes.JSONType[ServiceLineJSON]  `gorm:"type:json"`
	Additional      datatypes.JSONSlice[ServiceLineJSON] `gorm:"type:json"`
	BasePrice       int64                                `gorm:"not null"`
	AdditionalPrice int64                                `gorm:"not null"`
	TotalPrice      int64                                `gorm:"not null"`
	AppointmentAt   time.Time                            `gorm:"index;not null"`
	ContactPhone    string                               `gorm:"size:20"`
	Remark          string                               `gorm:"size:500"`
	Status          string                               `gorm:"size:20;index;not null"`
	IsPaid          bool                                 `gorm:"default:false"`
	PaidAt          *time.Time
	CancelReason    string    `gorm:"size:255"`
	Version         int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (ServiceOrderPO) TableName() string {
	return "service_orders"
}

func toServiceLineJSON(l booking.ServiceLine) ServiceLineJSON {
	return ServiceLineJSON{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price}
}

func (l ServiceLineJSON) toDomain() booking.ServiceLine {
	return booking.ServiceLine{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price}
}

func FromServiceOrderDomain(o *booking.ServiceOrder) *ServiceOrderPO {
	additional := make([]ServiceLineJSON, 0, len(o.Additional()))
	for _, l := range o.Additional() {
		additional = append(additional, toServiceLineJSON(l))
	}
	return &ServiceOrderPO{
		ID:              o.ID(),
		OrderNo:         o.OrderNo(),
		UserID:          o.UserID(),
		StaffID:         o.StaffID(),
		PetIDs:          datatypes.JSONSlice[string](o.PetIDs()),
		BaseService:     datatypes.NewJSONType(toServiceLineJSON(o.BaseService())),
		Additional:      datatypes.JSONSlice[ServiceLineJSON](additional),
		BasePrice:       o.BasePrice(),
		AdditionalPrice: o.AdditionalPrice(),
		TotalPrice:      o.TotalPrice(),
		AppointmentAt:   o.AppointmentAt(),
		ContactPhone:    o.ContactPhone(),
		Remark:          o.Remark(),
		Status:          string(o.Status()),
		IsPaid:          o.IsPaid(),
		PaidAt:          o.PaidAt(),
		CancelReason:    o.CancelReason(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func (po *ServiceOrderPO) ToDomain() *booking.ServiceOrder {
	additional := make([]booking.ServiceLine, 0, len(po.Additional))
	for _, l := range po.Additional {
		additional = append(additional, l.toDomain())
	}
	return booking.RebuildFromDTO(booking.ReconstructionDTO{
		ID:            po.ID,
		OrderNo:       po.OrderNo,
		UserID:        po.UserID,
		StaffID:       po.StaffID,
		PetIDs:        []string(po.PetIDs),
		BaseService:   po.BaseService.Data().toDomain(),
		Additional:    additional,
		AppointmentAt: po.AppointmentAt,
		ContactPhone:  po.ContactPhone,
		Remark:        po.Remark,
		Status:        po.Status,
		IsPaid:        po.IsPaid,
		PaidAt:        po.PaidAt,
		CancelReason:  po.CancelReason,
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}
