package dtos

type TemplateCreateRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Description string            `json:"description" binding:"max=1000"`
	Fields      map[string]string `json:"fields"`
	IsDefault   bool              `json:"is_default"`
}

// Pointer fields so "not sent" and "sent as zero value" stay distinguishable
type TemplateUpdateRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Fields      *map[string]string `json:"fields"`
	IsDefault   *bool              `json:"is_default"`
}
