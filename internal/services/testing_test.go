package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/careerpilot/autofill-backend/internal/config"
	"github.com/careerpilot/autofill-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB gives each test its own in-memory sqlite with the same schema
// and error translation the postgres setup uses, so unique-index violations
// surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Template{},
		&models.SiteMapping{},
		&models.Application{},
	))
	return db
}

func testPolicy() config.GuardPolicy {
	return config.GuardPolicy{
		RateLimitCap:      3,
		RateLimitWindow:   24 * time.Hour,
		DefaultConfidence: 0.5,
		ConfidenceAlpha:   0.1,
	}
}
