package dtos

// ProfileUpdateRequest merges the given fields into the caller's profile.
// Keys not present are left untouched; an empty value clears a key.
type ProfileUpdateRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}
