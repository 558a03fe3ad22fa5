package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/careerpilot/autofill-backend/internal/config"
	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/engine"
	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB       *gorm.DB
	Policy   config.GuardPolicy
	Mappings *MappingService
}

func NewApplicationService(db *gorm.DB, policy config.GuardPolicy, mappings *MappingService) *ApplicationService {
	return &ApplicationService{
		DB:       db,
		Policy:   policy,
		Mappings: mappings,
	}
}

// Admit decides whether a new attempt for (owner, job) may proceed.
// This is advisory for the caller's UX; the authoritative duplicate check is
// the unique index hit inside Record, so two workers racing through Admit
// still end up with exactly one application.
func (s *ApplicationService) Admit(ownerID, jobID string, now time.Time) error {
	var count int64
	err := s.DB.Model(&models.Application{}).
		Where("owner_id = ? AND job_id = ?", ownerID, jobID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateJob
	}
	return s.checkRate(ownerID, now)
}

// checkRate counts attempts in the trailing window. "At least the cap" is
// the decisive comparison: under replication lag we deny rather than let an
// extra application slip through.
func (s *ApplicationService) checkRate(ownerID string, now time.Time) error {
	since := now.Add(-s.Policy.RateLimitWindow)
	var count int64
	err := s.DB.Model(&models.Application{}).
		Where("owner_id = ? AND created_at > ?", ownerID, since).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count >= int64(s.Policy.RateLimitCap) {
		return ErrRateLimited
	}
	return nil
}

// Record creates the application exactly once. The insert carries the
// duplicate check: a unique-index violation on (owner_id, job_id) comes back
// as ErrDuplicateJob instead of a check-then-act race. Template usage is
// bumped in the same transaction with an atomic SQL increment.
func (s *ApplicationService) Record(ownerID string, req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	if req.FieldsFilled > req.TotalFields {
		return nil, fmt.Errorf("%w: fields_filled %d exceeds total_fields %d", ErrValidation, req.FieldsFilled, req.TotalFields)
	}

	if err := s.checkRate(ownerID, time.Now()); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	app := &models.Application{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		JobID:                req.JobID,
		JobTitle:             req.JobTitle,
		CompanyName:          req.CompanyName,
		JobURL:               req.JobURL,
		SiteDomain:           NormalizeDomain(req.SiteDomain),
		TemplateID:           req.TemplateID,
		MappingID:            req.MappingID,
		Status:               status,
		FieldsFilled:         req.FieldsFilled,
		TotalFields:          req.TotalFields,
		ManualReviewRequired: req.ManualReviewRequired,
		Notes:                req.Notes,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateJob
			}
			return err
		}
		if app.TemplateID != "" {
			res := tx.Model(&models.Template{}).
				Where("id = ? AND owner_id = ?", app.TemplateID, ownerID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("template %s: %w", app.TemplateID, ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A confirmed synchronous submission already validates the mapping
	if app.Status == models.StatusApplied && app.MappingID != "" {
		s.nudgeConfidence(app)
	}

	return app, nil
}

// UpdateStatus is the ledger's only mutator: re-read, validate against the
// transition table, write with compare-and-swap on the current status so a
// racing webhook and manual correction can't overwrite each other.
func (s *ApplicationService) UpdateStatus(ownerID, applicationID, newStatus, notes string) (*models.Application, error) {
	for attempt := 0; attempt < 3; attempt++ {
		var app models.Application
		err := s.DB.Where("id = ? AND owner_id = ?", applicationID, ownerID).First(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		if !engine.CanTransition(app.Status, newStatus) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, newStatus)
		}

		updates := map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}
		if notes != "" {
			updates["notes"] = notes
		}

		res := s.DB.Model(&models.Application{}).
			Where("id = ? AND owner_id = ? AND status = ?", applicationID, ownerID, app.Status).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// lost the race, re-read and re-validate from the new status
			continue
		}

		app.Status = newStatus
		if notes != "" {
			app.Notes = notes
		}

		if engine.IsTerminal(newStatus) && newStatus != models.StatusWithdrawn && app.MappingID != "" {
			s.nudgeConfidence(&app)
		}
		return &app, nil
	}
	return nil, fmt.Errorf("status update for %s kept losing to concurrent writers", applicationID)
}

// nudgeConfidence feeds the outcome back into the site mapping's score.
// Best-effort: a failed nudge is logged, never propagated, because the
// status change itself has already committed.
func (s *ApplicationService) nudgeConfidence(app *models.Application) {
	ratio := 0.0
	if app.TotalFields > 0 {
		ratio = float64(app.FieldsFilled) / float64(app.TotalFields)
	}
	if err := s.Mappings.RecordOutcome(app.OwnerID, app.MappingID, app.Status, ratio); err != nil {
		log.Printf("⚠️ Confidence update failed for mapping %s: %v", app.MappingID, err)
	}
}

func (s *ApplicationService) Get(ownerID, applicationID string) (*models.Application, error) {
	var app models.Application
	err := s.DB.Where("id = ? AND owner_id = ?", applicationID, ownerID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns the owner's history, newest first, filterable by status,
// site domain and time range for the analytics side.
func (s *ApplicationService) List(ownerID string, filter *dtos.ApplicationListFilter) ([]models.Application, error) {
	query := s.DB.Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SiteDomain != "" {
		query = query.Where("site_domain = ?", NormalizeDomain(filter.SiteDomain))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var apps []models.Application
	err := query.Order("created_at DESC").Limit(limit).Find(&apps).Error
	return apps, err
}

// Summary aggregates the ledger for the analytics endpoint.
type Summary struct {
	TotalApplications int64               `json:"total_applications"`
	TotalTemplates    int64               `json:"total_templates"`
	TotalMappings     int64               `json:"total_mappings"`
	StatusBreakdown   map[string]int64    `json:"status_breakdown"`
	MostRecent        *models.Application `json:"most_recent_application"`
}

func (s *ApplicationService) Summarize(ownerID string) (*Summary, error) {
	summary := &Summary{StatusBreakdown: map[string]int64{}}

	rows := []struct {
		Status string
		Count  int64
	}{}
	err := s.DB.Model(&models.Application{}).
		Select("status, count(*) as count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.StatusBreakdown[row.Status] = row.Count
		summary.TotalApplications += row.Count
	}

	if err := s.DB.Model(&models.Template{}).Where("owner_id = ?", ownerID).Count(&summary.TotalTemplates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.SiteMapping{}).Where("owner_id = ?", ownerID).Count(&summary.TotalMappings).Error; err != nil {
		return nil, err
	}

	var recent models.Application
	err = s.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").First(&recent).Error
	if err == nil {
		summary.MostRecent = &recent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return summary, nil
}
