package services

import (
	"errors"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateService struct {
	DB *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{DB: db}
}

func (s *TemplateService) Create(ownerID string, req *dtos.TemplateCreateRequest) (*models.Template, error) {
	template := &models.Template{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		IsDefault:   req.IsDefault,
	}
	if template.Fields == nil {
		template.Fields = models.FieldMap{}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Single-default invariant: setting a new default clears any prior one
		if template.IsDefault {
			if err := clearDefault(tx, ownerID); err != nil {
				return err
			}
		}
		return tx.Create(template).Error
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) List(ownerID string) ([]models.Template, error) {
	var templates []models.Template
	err := s.DB.Where("owner_id = ?", ownerID).Order("created_at").Find(&templates).Error
	return templates, err
}

func (s *TemplateService) Get(ownerID, templateID string) (*models.Template, error) {
	var template models.Template
	err := s.DB.Where("id = ? AND owner_id = ?", templateID, ownerID).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetDefault returns the owner's default template, or nil when none is set.
func (s *TemplateService) GetDefault(ownerID string) (*models.Template, error) {
	var template models.Template
	err := s.DB.Where("owner_id = ? AND is_default = ?", ownerID, true).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *TemplateService) Update(ownerID, templateID string, req *dtos.TemplateUpdateRequest) (*models.Template, error) {
	template, err := s.Get(ownerID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Fields != nil {
		template.Fields = *req.Fields
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil {
			if *req.IsDefault && !template.IsDefault {
				if err := clearDefault(tx, ownerID); err != nil {
					return err
				}
			}
			template.IsDefault = *req.IsDefault
		}
		return tx.Save(template).Error
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) Delete(ownerID, templateID string) error {
	res := s.DB.Where("id = ? AND owner_id = ?", templateID, ownerID).Delete(&models.Template{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func clearDefault(tx *gorm.DB, ownerID string) error {
	return tx.Model(&models.Template{}).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		Update("is_default", false).Error
}
