package services

import (
	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/engine"
)

// FillService glues the matching engine to its data sources: the profile,
// the chosen template and the site mapping registry.
type FillService struct {
	Profiles  *ProfileService
	Templates *TemplateService
	Mappings  *MappingService
}

func NewFillService(profiles *ProfileService, templates *TemplateService, mappings *MappingService) *FillService {
	return &FillService{
		Profiles:  profiles,
		Templates: templates,
		Mappings:  mappings,
	}
}

// ResolveResult is the fill-plan plus what the caller needs to record the
// attempt afterwards: which mapping was used and whether the plan should go
// through manual review before submission.
type ResolveResult struct {
	Plan                 engine.FillPlan `json:"plan"`
	TemplateID           string          `json:"template_id,omitempty"`
	MappingID            string          `json:"mapping_id,omitempty"`
	RequiresManualReview bool            `json:"requires_manual_review"`
}

// Resolve builds a fill-plan for the given form. The template is the one
// requested or the owner's default; no template at all is fine, the plan
// just resolves against the profile alone. An empty plan is a result, not
// an error: callers flag it for manual review.
func (s *FillService) Resolve(ownerID string, req *dtos.ResolveRequest) (*ResolveResult, error) {
	profile, err := s.Profiles.GetOrCreate(ownerID)
	if err != nil {
		return nil, err
	}

	result := &ResolveResult{}

	var templateFields map[string]string
	if req.TemplateID != "" {
		template, err := s.Templates.Get(ownerID, req.TemplateID)
		if err != nil {
			return nil, err
		}
		templateFields = template.Fields
		result.TemplateID = template.ID
	} else if template, err := s.Templates.GetDefault(ownerID); err != nil {
		return nil, err
	} else if template != nil {
		templateFields = template.Fields
		result.TemplateID = template.ID
	}

	mapping, err := s.Mappings.Lookup(ownerID, req.SiteDomain)
	if err != nil {
		return nil, err
	}

	var explicitMappings map[string]string
	result.RequiresManualReview = true
	if mapping != nil {
		explicitMappings = mapping.FieldMappings
		result.MappingID = mapping.ID
		result.RequiresManualReview = mapping.RequiresManualReview
	}

	result.Plan = engine.Resolve(req.FormFields, templateFields, profile.Fields, explicitMappings)

	// Nothing filled at all means the template/profile data can't serve this
	// form; force the plan through review whatever the mapping says.
	if result.Plan.FieldsFilled == 0 {
		result.RequiresManualReview = true
	}

	return result, nil
}
