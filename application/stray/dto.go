package stray

import "time"

type StrayRequest struct {
	Species     string   `json:"species" binding:"required,max=32"`
	Description string   `json:"description" binding:"max=2000"`
	Images      []string `json:"images" binding:"max=9,dive,max=512"`
	Latitude    float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64  `json:"longitude" binding:"min=-180,max=180"`
	Address     string   `json:"address" binding:"max=255"`
}

type ListStraysRequest struct {
	Species      string `form:"species"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	RescueStatus string `form:"rescue_status" binding:"omitempty,oneof=wandering rescued adopted"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

// NearbyRequest radius_km 缺省 5，最大 50
type NearbyRequest struct {
	Latitude  float64 `form:"lat" binding:"min=-90,max=90"`
	Longitude float64 `form:"lng" binding:"min=-180,max=180"`
	RadiusKm  float64 `form:"radius_km" binding:"min=0"`
	Limit     int     `form:"limit" binding:"min=0,max=200"`
}

type ReviewRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Reason  string `json:"reason" binding:"max=255"`
}

type RescueRequest struct {
	RescueStatus string `json:"rescue_status" binding:"required,oneof=wandering rescued adopted"`
}

type InteractionRequest struct {
	Type      string   `json:"type" binding:"required,oneof=comment sighting feeding"`
	Content   string   `json:"content" binding:"max=1000"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type StrayResponse struct {
	ID               string    `json:"id"`
	ReporterID       string    `json:"reporter_id"`
	Species          string    `json:"species"`
	Description      string    `json:"description"`
	Images           []string  `json:"images"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Address          string    `json:"address"`
	Status           string    `json:"status"`
	RescueStatus     string    `json:"rescue_status"`
	RejectReason     string    `json:"reject_reason,omitempty"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	InteractionCount int       `json:"interaction_count"`
	DistanceKm       *float64  `json:"distance_km,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type InteractionResponse struct {
	ID        string    `json:"id"`
	StrayID   string    `json:"stray_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
