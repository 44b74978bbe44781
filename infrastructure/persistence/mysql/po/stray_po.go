package po

import (
	"time"

	"petcare/domain/stray"

	"gorm.io/datatypes"
)

type StrayAnimalPO struct {
	ID               string                      `gorm:"primaryKey;size:64"`
	ReporterID       string                      `gorm:"size:64;index;not null"`
	Species          string                      `gorm:"size:32;index;not null"`
	Description      string                      `gorm:"size:1000"`
	Images           datatypes.JSONSlice[string] `gorm:"type:json"`
	Latitude         float64                     `gorm:"index:idx_stray_location;not null"`
	Longitude        float64                     `gorm:"index:idx_stray_location;not null"`
	Address          string                      `gorm:"size:255"`
	Status           string                      `gorm:"size:16;index;not null"`
	RescueStatus     string                      `gorm:"size:16;index;not null"`
	RejectReason     string                      `gorm:"size:255"`
	LastSeenAt       time.Time                   `gorm:"index"`
	InteractionCount int                         `gorm:"not null;default:0"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time                   `gorm:"autoUpdateTime"`
}

func (StrayAnimalPO) TableName() string {
	return "stray_animals"
}

func FromStrayDomain(a *stray.Animal) *StrayAnimalPO {
	return &StrayAnimalPO{
		ID:               a.ID,
		ReporterID:       a.ReporterID,
		Species:          a.Species,
		Description:      a.Description,
		Images:           datatypes.JSONSlice[string](a.Images),
		Latitude:         a.Latitude,
		Longitude:        a.Longitude,
		Address:          a.Address,
		Status:           string(a.Status),
		RescueStatus:     string(a.RescueStatus),
		RejectReason:     a.RejectReason,
		LastSeenAt:       a.LastSeenAt,
		InteractionCount: a.InteractionCount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (po *StrayAnimalPO) ToDomain() *stray.Animal {
	return &stray.Animal{
		ID:               po.ID,
		ReporterID:       po.ReporterID,
		Species:          po.Species,
		Description:      po.Description,
		Images:           []string(po.Images),
		Latitude:         po.Latitude,
		Longitude:        po.Longitude,
		Address:          po.Address,
		Status:           stray.Status(po.Status),
		RescueStatus:     stray.RescueStatus(po.RescueStatus),
		RejectReason:     po.RejectReason,
		LastSeenAt:       po.LastSeenAt,
		InteractionCount: po.InteractionCount,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}
}

type StrayInteractionPO struct {
	ID        string   `gorm:"primaryKey;size:64"`
	StrayID   string   `gorm:"size:64;index;not null"`
	UserID    string   `gorm:"size:64;index;not null"`
	Type      string   `gorm:"size:16;not null"`
	Content   string   `gorm:"size:1000"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (StrayInteractionPO) TableName() string {
	return "stray_interactions"
}

func FromStrayInteractionDomain(i *stray.Interaction) *StrayInteractionPO {
	return &StrayInteractionPO{
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

func (po *StrayInteractionPO) ToDomain() *stray.Interaction {
	return &stray.Interaction{
		ID:        po.ID,
		StrayID:   po.StrayID,
		UserID:    po.UserID,
		Type:      stray.InteractionType(po.Type),
		Content:   po.Content,
		Latitude:  po.Latitude,
		Longitude: po.Longitude,
		CreatedAt: po.CreatedAt,
	}
}
