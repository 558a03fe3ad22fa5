package dtos

import "time"

type ResolveRequest struct {
	FormFields []string `json:"form_fields" binding:"required,min=1"`
	SiteDomain string   `json:"site_domain" binding:"required"`
	// Optional: falls back to the owner's default template
	TemplateID string `json:"template_id"`
}

type AdmitRequest struct {
	JobID      string `json:"job_id" binding:"required"`
	SiteDomain string `json:"site_domain" binding:"required"`
}

type ApplicationCreateRequest struct {
	JobID       string `json:"job_id" binding:"required,max=200"`
	JobTitle    string `json:"job_title" binding:"required,max=200"`
	CompanyName string `json:"company_name" binding:"required,max=200"`
	JobURL      string `json:"job_url" binding:"required"`
	SiteDomain  string `json:"site_domain" binding:"required,max=200"`

	TemplateID string `json:"template_id"`
	MappingID  string `json:"mapping_id"`

	// Entry point is a caller policy choice: pending when submission has not
	// been confirmed yet, applied when it succeeded synchronously.
	Status string `json:"status" binding:"omitempty,oneof=pending applied"`

	FieldsFilled         int    `json:"fields_filled" binding:"gte=0"`
	TotalFields          int    `json:"total_fields" binding:"gte=0"`
	ManualReviewRequired bool   `json:"manual_review_required"`
	Notes                string `json:"notes" binding:"max=2000"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=pending applied interview rejected offer withdrawn"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// ApplicationListFilter is bound from query params on the history endpoint.
type ApplicationListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=pending applied interview rejected offer withdrawn"`
	SiteDomain string     `form:"site"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit,default=50" binding:"gte=0,lte=500"`
}
