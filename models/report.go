package models

import "time"

const (
	ReportTypeReview   = "review"
	ReportTypeUser     = "user"
	ReportTypeBusiness = "business"
	ReportTypeService  = "service"
	ReportTypeOther    = "other"
)

// Report is a complaint filed against an entity elsewhere on the platform.
// TargetID is an opaque reference; the reported entity lives in another
// subsystem and is never joined here.
type Report struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        string     `gorm:"not null;index" json:"type"` // review, user, business, service, other
	TargetID    int64      `gorm:"not null" json:"target_id"`
	Reason      string     `gorm:"size:255;not null" json:"reason"`
	Description *string    `gorm:"size:500" json:"description"`
	SubmittedBy *int64     `gorm:"index" json:"submitted_by"`
	ResolvedBy  *int64     `json:"resolved_by"`
	ResolvedAt  *time.Time `gorm:"index" json:"resolved_at"` // null means unresolved
	CreatedAt   time.Time  `json:"created_at"`

	Submitter *User `gorm:"foreignKey:SubmittedBy" json:"submitter"`
	Resolver  *User `gorm:"foreignKey:ResolvedBy" json:"resolver"`
}

func ValidReportType(t string) bool {
	switch t {
	case ReportTypeReview, ReportTypeUser, ReportTypeBusiness, ReportTypeService, ReportTypeOther:
		return true
	}
	return false
}
