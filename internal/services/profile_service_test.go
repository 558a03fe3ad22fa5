package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	first, err := svc.GetOrCreate("owner-1")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Empty(t, first.Fields)

	second, err := svc.GetOrCreate("owner-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestProfileUpdateMerges(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	_, err := svc.Update("owner-1", map[string]string{
		"first_name": "Ada",
		"email":      "ada@x.com",
	})
	require.NoError(t, err)

	profile, err := svc.Update("owner-1", map[string]string{
		"email": "ada@work.com",
		"phone": "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.Fields["first_name"])
	assert.Equal(t, "ada@work.com", profile.Fields["email"])
	assert.Equal(t, "555-0100", profile.Fields["phone"])
}

func TestProfileUpdateEmptyValueClearsKey(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	_, err := svc.Update("owner-1", map[string]string{"phone": "555-0100"})
	require.NoError(t, err)

	profile, err := svc.Update("owner-1", map[string]string{"phone": ""})
	require.NoError(t, err)
	assert.NotContains(t, profile.Fields, "phone")

	// persisted, not just mutated in memory
	profile, err = svc.GetOrCreate("owner-1")
	require.NoError(t, err)
	assert.NotContains(t, profile.Fields, "phone")
}

func TestProfilesAreIsolatedPerOwner(t *testing.T) {
	svc := NewProfileService(newTestDB(t))

	_, err := svc.Update("owner-1", map[string]string{"email": "one@x.com"})
	require.NoError(t, err)

	profile, err := svc.GetOrCreate("owner-2")
	require.NoError(t, err)
	assert.Empty(t, profile.Fields)
}
