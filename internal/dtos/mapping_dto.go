package dtos

// MappingUpsertRequest creates or merges a site mapping. A repeated upsert
// for the same site replaces overlapping identifiers and adds new ones;
// it never drops prior entries (that is what DeleteEntries is for).
type MappingUpsertRequest struct {
	SiteDomain           string            `json:"site_domain" binding:"required,max=200"`
	SiteName             string            `json:"site_name" binding:"max=100"`
	FieldMappings        map[string]string `json:"field_mappings"`
	RequiresManualReview *bool             `json:"requires_manual_review"`
	AutoSubmitEnabled    *bool             `json:"auto_submit_enabled"`
	Notes                string            `json:"notes" binding:"max=1000"`
}

// MappingDeleteEntriesRequest removes specific identifier entries from a
// mapping, the explicit removal path the merge semantics refers callers to.
type MappingDeleteEntriesRequest struct {
	Identifiers []string `json:"identifiers" binding:"required,min=1"`
}

type MappingSuggestRequest struct {
	RawHTML    string `json:"raw_html" binding:"required"`
	SiteDomain string `json:"site_domain" binding:"required"`
}
