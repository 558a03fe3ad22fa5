package services

import (
	"errors"

	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetOrCreate returns the owner's profile, creating an empty one on first
// access so the extension always has something to merge into.
func (s *ProfileService) GetOrCreate(ownerID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.Where("owner_id = ?", ownerID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			ID:      uuid.NewString(),
			OwnerID: ownerID,
			Fields:  models.FieldMap{},
		}
		err = s.DB.Create(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update merges the given fields into the stored profile. Profiles are never
// deleted, only superseded: an empty value clears a key, absent keys stay.
func (s *ProfileService) Update(ownerID string, fields map[string]string) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ownerID)
	if err != nil {
		return nil, err
	}

	if profile.Fields == nil {
		profile.Fields = models.FieldMap{}
	}
	for key, value := range fields {
		if value == "" {
			delete(profile.Fields, key)
			continue
		}
		profile.Fields[key] = value
	}

	if err := s.DB.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
