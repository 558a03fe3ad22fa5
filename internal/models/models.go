package models

import (
	"time"
)

// Application status lifecycle.
// pending and applied are the only states a transition may start from;
// the other four are terminal (re-opening means a new Application).
const (
	StatusPending   = "pending"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusOffer     = "offer"
	StatusWithdrawn = "withdrawn"
)

// FieldMap holds field-key -> value pairs. Stored as a JSON column.
// Boolean answers (work authorization etc.) are kept as "true"/"false"
// strings because that is what ends up in the form anyway.
type FieldMap map[string]string

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string `json:"display_name"`
}

// Profile is the user's canonical field data (name, contact, experience,
// preferences). One row per owner, never deleted, only superseded by update.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID string   `gorm:"uniqueIndex;not null" json:"owner_id"`
	Fields  FieldMap `gorm:"serializer:json" json:"fields"`
}

// Template is a named, reusable subset/override of profile fields.
// At most one template per owner has IsDefault set.
type Template struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID     string   `gorm:"index;not null" json:"owner_id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `json:"description"`
	Fields      FieldMap `gorm:"serializer:json" json:"fields"`
	IsDefault   bool     `json:"is_default"`
	// UsageCount only ever goes up, bumped atomically per recorded application
	UsageCount int `json:"usage_count"`
}

// SiteMapping translates a site's form field identifiers into profile field
// keys. The (owner_id, site_domain) pair is unique; identifiers are unique
// within a mapping by being keys of FieldMappings.
type SiteMapping struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID    string `gorm:"uniqueIndex:idx_owner_site;not null" json:"owner_id"`
	SiteDomain string `gorm:"uniqueIndex:idx_owner_site;not null" json:"site_domain"`
	SiteName   string `json:"site_name"`

	// form-field-identifier -> profile field key
	FieldMappings FieldMap `gorm:"serializer:json" json:"field_mappings"`

	// New mappings start with RequiresManualReview set by the registry, not
	// by a column default: a column default would swallow an explicit false
	// on insert (the zero value is omitted from the INSERT).
	RequiresManualReview bool       `json:"requires_manual_review"`
	AutoSubmitEnabled    bool       `json:"auto_submit_enabled"`
	Confidence           float64    `json:"confidence"`
	LastValidatedAt      *time.Time `json:"last_validated_at"`
	Notes                string     `json:"notes"`
}

// Application is the durable record of one attempt against one job posting.
// The composite unique index on (owner_id, job_id) is what makes the
// duplicate guard race-free: two concurrent inserts cannot both land.
type Application struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_owner_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID string `gorm:"uniqueIndex:idx_owner_job;index:idx_owner_created;not null" json:"owner_id"`
	JobID   string `gorm:"uniqueIndex:idx_owner_job;not null" json:"job_id"`

	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	JobURL      string `json:"job_url"`
	SiteDomain  string `gorm:"index" json:"site_domain"`

	TemplateID string `json:"template_id"`
	MappingID  string `json:"mapping_id"`

	Status string `gorm:"index;default:'pending'" json:"status"`

	// Autofill coverage metrics, FieldsFilled <= TotalFields
	FieldsFilled         int  `json:"fields_filled"`
	TotalFields          int  `json:"total_fields"`
	ManualReviewRequired bool `json:"manual_review_required"`

	Notes string `gorm:"type:text" json:"notes"`
}
