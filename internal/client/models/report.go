package models

import "time"

type ReportType string

const (
	ReportTypeUser     ReportType = "user"
	ReportTypeProperty ReportType = "property"
	ReportTypeMessage  ReportType = "message"
)

type ReportStatus string

const (
	ReportOpen        ReportStatus = "open"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
	ReportDismissed   ReportStatus = "dismissed"
)

// Terminal reports whether no further status transition is allowed from s.
func (s ReportStatus) Terminal() bool {
	return s == ReportResolved || s == ReportDismissed
}

// CanMoveTo reports whether a plain status change from s to next is allowed.
// Resolving goes through the resolution flow instead.
func (s ReportStatus) CanMoveTo(next ReportStatus) bool {
	switch s {
	case ReportOpen:
		return next == ReportUnderReview || next == ReportDismissed
	case ReportUnderReview:
		return next == ReportOpen || next == ReportDismissed
	}
	return false
}

// CanResolve reports whether the resolution flow may start from s.
func (s ReportStatus) CanResolve() bool {
	return s == ReportOpen || s == ReportUnderReview
}

type ResolutionAction string

const (
	ActionNone           ResolutionAction = "none"
	ActionWarned         ResolutionAction = "warned"
	ActionTemporaryBan   ResolutionAction = "temporary_ban"
	ActionPermanentBan   ResolutionAction = "permanent_ban"
	ActionContentRemoved ResolutionAction = "content_removed"
	ActionOther          ResolutionAction = "other"
)

var ResolutionActions = []ResolutionAction{
	ActionNone, ActionWarned, ActionTemporaryBan, ActionPermanentBan, ActionContentRemoved, ActionOther,
}

func (a ResolutionAction) Valid() bool {
	for _, v := range ResolutionActions {
		if v == a {
			return true
		}
	}
	return false
}

// Destructive actions need an extra confirmation before they are submitted.
func (a ResolutionAction) Destructive() bool {
	return a == ActionPermanentBan || a == ActionContentRemoved
}

type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Resolution struct {
	Action     ResolutionAction `json:"action"`
	Details    string           `json:"details"`
	ResolvedAt time.Time        `json:"resolvedAt"`
}

type Report struct {
	ID          string       `json:"id"`
	Type        ReportType   `json:"type"`
	Category    string       `json:"category"`
	Status      ReportStatus `json:"status"`
	Description string       `json:"description"`
	ReporterID  string       `json:"reporterId,omitempty"`
	TargetID    string       `json:"targetId,omitempty"`
	AdminNotes  []Note       `json:"adminNotes"`
	Resolution  *Resolution  `json:"resolution,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (r Report) Key() string { return r.ID }

// ReportQuery is the server-side filter for the moderation queue.
type ReportQuery struct {
	Status   ReportStatus
	Type     ReportType
	Category string
	Search   string
	Page     int
	Limit    int
}

type ReportPage struct {
	Reports    []Report `json:"reports"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
}
