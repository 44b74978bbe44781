// Package stray tracks stray animals reported by users, moderated by admins
// and followed up through sightings, feedings and comments.
package stray

import (
	"strings"
	"time"

	"petcare/domain/shared"
	"petcare/pkg/geo"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var reviewTransitions = shared.Transitions[Status]{
	StatusPending: {StatusApproved, StatusRejected},
}

type RescueStatus string

const (
	RescueWandering RescueStatus = "wandering"
	RescueRescued   RescueStatus = "rescued"
	RescueAdopted   RescueStatus = "adopted"
)

func (r RescueStatus) IsValid() bool {
	return r == RescueWandering || r == RescueRescued || r == RescueAdopted
}

const (
	DefaultRadiusKm = 5.0
	MaxRadiusKm     = 50.0
)

type Animal struct {
	ID               string
	ReporterID       string
	Species          string
	Description      string
	Images           []string
	Latitude         float64
	Longitude        float64
	Address          string
	Status           Status
	RescueStatus     RescueStatus
	RejectReason     string
	LastSeenAt       time.Time
	InteractionCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Input struct {
	Species     string
	Description string
	Images      []string
	Latitude    float64
	Longitude   float64
	Address     string
}

func (in *Input) validate() error {
	in.Species = strings.TrimSpace(in.Species)
	if in.Species == "" {
		return shared.NewValidationError("stray", "species", "species is required")
	}
	if !(geo.Point{Lat: in.Latitude, Lng: in.Longitude}).Valid() {
		return shared.NewValidationError("stray", "latitude", "coordinates out of range")
	}
	if len(in.Images) > 9 {
		return shared.NewValidationError("stray", "images", "at most 9 images")
	}
	return nil
}

// NewAnimal reports a stray; it stays hidden until approved.
func NewAnimal(reporterID string, in Input) (*Animal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &Animal{
		ID:           uuid.New().String(),
		ReporterID:   reporterID,
		Status:       StatusPending,
		RescueStatus: RescueWandering,
		LastSeenAt:   now,
		CreatedAt:    now,
	}
	a.apply(in, now)
	return a, nil
}

func (a *Animal) Update(in Input) error {
	if err := in.validate(); err != nil {
		return err
	}
	a.apply(in, time.Now())
	return nil
}

func (a *Animal) apply(in Input, now time.Time) {
	a.Species = in.Species
	a.Description = in.Description
	a.Images = append([]string(nil), in.Images...)
	a.Latitude = in.Latitude
	a.Longitude = in.Longitude
	a.Address = in.Address
	a.UpdatedAt = now
}

func (a *Animal) Review(approve bool, reason string) error {
	to := StatusRejected
	if approve {
		to = StatusApproved
	}
	if !reviewTransitions.Allows(a.Status, to) {
		return shared.NewStateError("stray", "only pending reports can be reviewed")
	}
	a.Status = to
	a.RejectReason = ""
	if !approve {
		a.RejectReason = reason
	}
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Animal) SetRescueStatus(status RescueStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("stray", "rescue_status", "rescue status must be wandering, rescued or adopted")
	}
	a.RescueStatus = status
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Animal) Point() geo.Point {
	return geo.Point{Lat: a.Latitude, Lng: a.Longitude}
}

func (a *Animal) VisibleTo(viewerID string) bool {
	return a.Status == StatusApproved || (viewerID != "" && viewerID == a.ReporterID)
}

func (a *Animal) OwnedBy(userID string) error {
	if a.ReporterID != userID {
		return shared.NewForbiddenError("stray", "only the reporter can modify this report")
	}
	return nil
}

// Sighted moves the last known location to a fresh sighting.
func (a *Animal) Sighted(lat, lng float64, at time.Time) {
	a.Latitude = lat
	a.Longitude = lng
	a.LastSeenAt = at
	a.UpdatedAt = at
}

type InteractionType string

const (
	InteractionComment  InteractionType = "comment"
	InteractionSighting InteractionType = "sighting"
	InteractionFeeding  InteractionType = "feeding"
)

type Interaction struct {
	ID        string
	StrayID   string
	UserID    string
	Type      InteractionType
	Content   string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

type InteractionInput struct {
	Type      InteractionType
	Content   string
	Latitude  *float64
	Longitude *float64
}

// NewInteraction records a follow-up on an approved stray. A sighting must
// carry coordinates and updates the stray's location.
func NewInteraction(animal *Animal, userID string, in InteractionInput) (*Interaction, error) {
	if animal.Status != StatusApproved {
		return nil, shared.NewNotFoundError("stray")
	}
	switch in.Type {
	case InteractionComment, InteractionFeeding:
	case InteractionSighting:
		if in.Latitude == nil || in.Longitude == nil {
			return nil, shared.NewValidationError("stray_interaction", "latitude", "sighting needs coordinates")
		}
	default:
		return nil, shared.NewValidationError("stray_interaction", "type", "type must be comment, sighting or feeding")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, shared.NewValidationError("stray_interaction", "latitude", "latitude and longitude go together")
	}
	if in.Latitude != nil && !(geo.Point{Lat: *in.Latitude, Lng: *in.Longitude}).Valid() {
		return nil, shared.NewValidationError("stray_interaction", "latitude", "coordinates out of range")
	}
	content := strings.TrimSpace(in.Content)
	if in.Type == InteractionComment && content == "" {
		return nil, shared.NewValidationError("stray_interaction", "content", "content is required")
	}

	now := time.Now()
	if in.Type == InteractionSighting {
		animal.Sighted(*in.Latitude, *in.Longitude, now)
	}
	animal.InteractionCount++
	return &Interaction{
		ID:        uuid.New().String(),
		StrayID:   animal.ID,
		UserID:    userID,
		Type:      in.Type,
		Content:   content,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: now,
	}, nil
}

// Nearby is an approved stray with its distance from the search center.
type Nearby struct {
	Animal     *Animal
	DistanceKm float64
}

// NormalizeRadius applies the default and the upper bound.
func NormalizeRadius(radiusKm float64) float64 {
	if radiusKm <= 0 {
		return DefaultRadiusKm
	}
	if radiusKm > MaxRadiusKm {
		return MaxRadiusKm
	}
	return radiusKm
}
