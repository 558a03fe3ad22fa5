package services

import (
	"testing"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCRUD(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	created, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{
		Name:   "SWE roles",
		Fields: map[string]string{"email": "work@x.com"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.UsageCount)

	got, err := svc.Get("owner-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SWE roles", got.Name)
	assert.Equal(t, "work@x.com", got.Fields["email"])

	name := "Senior SWE roles"
	updated, err := svc.Update("owner-1", created.ID, &dtos.TemplateUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	// untouched fields survive a partial update
	assert.Equal(t, "work@x.com", updated.Fields["email"])

	require.NoError(t, svc.Delete("owner-1", created.ID))
	_, err = svc.Get("owner-1", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateNotFoundPaths(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	_, err := svc.Get("owner-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	name := "x"
	_, err = svc.Update("owner-1", "missing", &dtos.TemplateUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete("owner-1", "missing"), ErrNotFound)
}

func TestTemplateScopedToOwner(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	created, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "mine"})
	require.NoError(t, err)

	_, err = svc.Get("owner-2", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete("owner-2", created.ID), ErrNotFound)
}

func TestSingleDefaultOnCreate(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	first, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "A", IsDefault: true})
	require.NoError(t, err)

	second, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "B", IsDefault: true})
	require.NoError(t, err)

	def, err := svc.GetDefault("owner-1")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	// the first one lost its flag
	got, err := svc.Get("owner-1", first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestSingleDefaultOnUpdate(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	first, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "A", IsDefault: true})
	require.NoError(t, err)
	second, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "B"})
	require.NoError(t, err)

	isDefault := true
	_, err = svc.Update("owner-1", second.ID, &dtos.TemplateUpdateRequest{IsDefault: &isDefault})
	require.NoError(t, err)

	var defaults []models.Template
	require.NoError(t, svc.DB.Where("owner_id = ? AND is_default = ?", "owner-1", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, second.ID, defaults[0].ID)

	got, err := svc.Get("owner-1", first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestDefaultIsPerOwner(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	mine, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "A", IsDefault: true})
	require.NoError(t, err)
	_, err = svc.Create("owner-2", &dtos.TemplateCreateRequest{Name: "B", IsDefault: true})
	require.NoError(t, err)

	// owner-2 claiming a default must not demote owner-1's
	def, err := svc.GetDefault("owner-1")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, mine.ID, def.ID)
}

func TestGetDefaultNilWhenUnset(t *testing.T) {
	svc := NewTemplateService(newTestDB(t))

	_, err := svc.Create("owner-1", &dtos.TemplateCreateRequest{Name: "A"})
	require.NoError(t, err)

	def, err := svc.GetDefault("owner-1")
	require.NoError(t, err)
	assert.Nil(t, def)
}
