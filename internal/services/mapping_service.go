package services

import (
	"errors"
	"strings"
	"time"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MappingService struct {
	DB *gorm.DB
	// EMA smoothing factor and the confidence new mappings start from
	Alpha             float64
	DefaultConfidence float64
}

func NewMappingService(db *gorm.DB, alpha, defaultConfidence float64) *MappingService {
	return &MappingService{DB: db, Alpha: alpha, DefaultConfidence: defaultConfidence}
}

// NormalizeDomain reduces a raw URL or host to its lowercase host:
// "https://www.LinkedIn.com:443/jobs/view/1" -> "linkedin.com"
func NormalizeDomain(raw string) string {
	domain := strings.ToLower(strings.TrimSpace(raw))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	if i := strings.Index(domain, ":"); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// Upsert creates the mapping for (owner, site) or merges into the existing
// one: overlapping identifiers are replaced, new ones added, and entries
// absent from the payload are kept. Dropping entries is DeleteEntries' job.
func (s *MappingService) Upsert(ownerID string, req *dtos.MappingUpsertRequest) (*models.SiteMapping, error) {
	domain := NormalizeDomain(req.SiteDomain)
	if domain == "" {
		return nil, ErrValidation
	}

	var mapping models.SiteMapping
	err := s.DB.Where("owner_id = ? AND site_domain = ?", ownerID, domain).First(&mapping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		mapping = models.SiteMapping{
			ID:                   uuid.NewString(),
			OwnerID:              ownerID,
			SiteDomain:           domain,
			FieldMappings:        models.FieldMap{},
			RequiresManualReview: true,
			Confidence:           s.DefaultConfidence,
		}
	} else if err != nil {
		return nil, err
	}

	for identifier, fieldKey := range req.FieldMappings {
		mapping.FieldMappings[identifier] = fieldKey
	}
	if req.SiteName != "" {
		mapping.SiteName = req.SiteName
	}
	if req.RequiresManualReview != nil {
		mapping.RequiresManualReview = *req.RequiresManualReview
	}
	if req.AutoSubmitEnabled != nil {
		mapping.AutoSubmitEnabled = *req.AutoSubmitEnabled
	}
	if req.Notes != "" {
		mapping.Notes = req.Notes
	}

	if err := s.DB.Save(&mapping).Error; err != nil {
		// Two first-time upserts for the same site can race; the unique index
		// on (owner_id, site_domain) decides, loser re-reads and merges again.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.Upsert(ownerID, req)
		}
		return nil, err
	}
	return &mapping, nil
}

// Lookup returns the mapping for the site, or nil when the owner has none
// (the matching engine then runs on fallback synonyms alone).
func (s *MappingService) Lookup(ownerID, siteDomain string) (*models.SiteMapping, error) {
	var mapping models.SiteMapping
	err := s.DB.Where("owner_id = ? AND site_domain = ?", ownerID, NormalizeDomain(siteDomain)).First(&mapping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (s *MappingService) List(ownerID, siteFilter string) ([]models.SiteMapping, error) {
	query := s.DB.Where("owner_id = ?", ownerID)
	if siteFilter != "" {
		query = query.Where("site_domain = ?", NormalizeDomain(siteFilter))
	}
	var mappings []models.SiteMapping
	err := query.Order("site_domain").Find(&mappings).Error
	return mappings, err
}

func (s *MappingService) Get(ownerID, mappingID string) (*models.SiteMapping, error) {
	var mapping models.SiteMapping
	err := s.DB.Where("id = ? AND owner_id = ?", mappingID, ownerID).First(&mapping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

// DeleteEntries removes specific identifier entries from a mapping.
func (s *MappingService) DeleteEntries(ownerID, mappingID string, identifiers []string) (*models.SiteMapping, error) {
	mapping, err := s.Get(ownerID, mappingID)
	if err != nil {
		return nil, err
	}
	for _, identifier := range identifiers {
		delete(mapping.FieldMappings, identifier)
	}
	if err := s.DB.Save(mapping).Error; err != nil {
		return nil, err
	}
	return mapping, nil
}

func (s *MappingService) Delete(ownerID, mappingID string) error {
	res := s.DB.Where("id = ? AND owner_id = ?", mappingID, ownerID).Delete(&models.SiteMapping{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordOutcome nudges the mapping's confidence after an application outcome
// with an exponential moving average: toward 1.0 when the pipeline worked
// (applied/interview/offer), toward the observed fill ratio on a rejection,
// so repeated rejections with poor coverage drag the score down.
// The update runs as a single SQL expression so concurrent outcomes for the
// same mapping don't lose each other's nudges.
func (s *MappingService) RecordOutcome(ownerID, mappingID, status string, fillRatio float64) error {
	target := 1.0
	if status == models.StatusRejected {
		target = fillRatio
	}

	res := s.DB.Model(&models.SiteMapping{}).
		Where("id = ? AND owner_id = ?", mappingID, ownerID).
		UpdateColumns(map[string]interface{}{
			"confidence":        gorm.Expr("confidence + ? * (? - confidence)", s.Alpha, target),
			"last_validated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
