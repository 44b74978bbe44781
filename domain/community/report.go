package community

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type ReportTarget string

const (
	ReportTargetPost    ReportTarget = "post"
	ReportTargetComment ReportTarget = "comment"
	ReportTargetUser    ReportTarget = "user"
)

func (t ReportTarget) IsValid() bool {
	return t == ReportTargetPost || t == ReportTargetComment || t == ReportTargetUser
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

var reportTransitions = shared.Transitions[ReportStatus]{
	ReportPending: {ReportResolved, ReportDismissed},
}

type Report struct {
	ID          string
	ReporterID  string
	TargetType  ReportTarget
	TargetID    string
	Reason      string
	Status      ReportStatus
	HandlerID   string
	HandlerNote string
	HandledAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReport(reporterID string, target ReportTarget, targetID, reason string) (*Report, error) {
	if !target.IsValid() {
		return nil, shared.NewValidationError("report", "target_type", "target type must be post, comment or user")
	}
	if targetID == "" {
		return nil, shared.NewValidationError("report", "target_id", "target id is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("report", "reason", "reason is required")
	}
	now := time.Now()
	return &Report{
		ID:         uuid.New().String(),
		ReporterID: reporterID,
		TargetType: target,
		TargetID:   targetID,
		Reason:     reason,
		Status:     ReportPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Handle resolves or dismisses a pending report.
func (r *Report) Handle(handlerID string, to ReportStatus, note string) error {
	if !reportTransitions.Allows(r.Status, to) {
		return shared.NewStateError("report", "cannot move report from "+string(r.Status)+" to "+string(to))
	}
	now := time.Now()
	r.Status = to
	r.HandlerID = handlerID
	r.HandlerNote = note
	r.HandledAt = &now
	r.UpdatedAt = now
	return nil
}
