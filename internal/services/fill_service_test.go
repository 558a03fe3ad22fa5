package services

import (
	"testing"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFillService(t *testing.T) *FillService {
	db := newTestDB(t)
	policy := testPolicy()
	return NewFillService(
		NewProfileService(db),
		NewTemplateService(db),
		NewMappingService(db, policy.ConfidenceAlpha, policy.DefaultConfidence),
	)
}

func TestResolveFromProfileAlone(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Profiles.Update("owner-1", map[string]string{
		"first_name": "Ada",
		"email":      "ada@x.com",
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"fname", "email", "cover_letter"},
		SiteDomain: "linkedin.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", result.Plan.Values["fname"])
	assert.Equal(t, "ada@x.com", result.Plan.Values["email"])
	assert.Equal(t, 2, result.Plan.FieldsFilled)
	assert.Equal(t, []string{"cover_letter"}, result.Plan.Unfilled)
	assert.Empty(t, result.TemplateID)
	assert.Empty(t, result.MappingID)
	// no mapping on file means the plan is unvetted
	assert.True(t, result.RequiresManualReview)
}

func TestResolveUsesDefaultTemplate(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Profiles.Update("owner-1", map[string]string{"email": "personal@x.com"})
	require.NoError(t, err)

	template, err := svc.Templates.Create("owner-1", &dtos.TemplateCreateRequest{
		Name:      "work",
		IsDefault: true,
		Fields:    map[string]string{"email": "work@x.com"},
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"email"},
		SiteDomain: "linkedin.com",
	})
	require.NoError(t, err)

	assert.Equal(t, template.ID, result.TemplateID)
	assert.Equal(t, "work@x.com", result.Plan.Values["email"])
}

func TestResolveExplicitTemplateBeatsDefault(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Templates.Create("owner-1", &dtos.TemplateCreateRequest{
		Name:      "default",
		IsDefault: true,
		Fields:    map[string]string{"email": "default@x.com"},
	})
	require.NoError(t, err)

	requested, err := svc.Templates.Create("owner-1", &dtos.TemplateCreateRequest{
		Name:   "special",
		Fields: map[string]string{"email": "special@x.com"},
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"email"},
		SiteDomain: "linkedin.com",
		TemplateID: requested.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, requested.ID, result.TemplateID)
	assert.Equal(t, "special@x.com", result.Plan.Values["email"])
}

func TestResolveUnknownTemplate(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"email"},
		SiteDomain: "linkedin.com",
		TemplateID: "missing",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveMappingDrivesReviewFlag(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Profiles.Update("owner-1", map[string]string{"cover_letter": "Dear team,"})
	require.NoError(t, err)

	noReview := false
	mapping, err := svc.Mappings.Upsert("owner-1", &dtos.MappingUpsertRequest{
		SiteDomain:           "linkedin.com",
		FieldMappings:        map[string]string{"#msg": "cover_letter"},
		RequiresManualReview: &noReview,
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"#msg"},
		SiteDomain: "https://www.linkedin.com/jobs/view/1",
	})
	require.NoError(t, err)

	assert.Equal(t, mapping.ID, result.MappingID)
	assert.Equal(t, "Dear team,", result.Plan.Values["#msg"])
	assert.False(t, result.RequiresManualReview)
}

func TestResolveEmptyPlanForcesReview(t *testing.T) {
	svc := newFillService(t)

	// vetted mapping, but the owner has no data to fill with
	noReview := false
	_, err := svc.Mappings.Upsert("owner-1", &dtos.MappingUpsertRequest{
		SiteDomain:           "linkedin.com",
		FieldMappings:        map[string]string{"#msg": "cover_letter"},
		RequiresManualReview: &noReview,
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"#msg"},
		SiteDomain: "linkedin.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Plan.FieldsFilled)
	assert.True(t, result.RequiresManualReview)
}

func TestResolveMappingWinsOverSynonymFallback(t *testing.T) {
	svc := newFillService(t)

	_, err := svc.Profiles.Update("owner-1", map[string]string{
		"first_name":   "Ada",
		"cover_letter": "Dear team,",
	})
	require.NoError(t, err)

	// the site labels its cover letter box "fname"; only the explicit
	// mapping knows better than the synonym table
	_, err = svc.Mappings.Upsert("owner-1", &dtos.MappingUpsertRequest{
		SiteDomain:    "weird.example.com",
		FieldMappings: map[string]string{"fname": "cover_letter"},
	})
	require.NoError(t, err)

	result, err := svc.Resolve("owner-1", &dtos.ResolveRequest{
		FormFields: []string{"fname"},
		SiteDomain: "weird.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dear team,", result.Plan.Values["fname"])
}
