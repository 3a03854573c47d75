package migration

import (
	"errors"

	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// categoryUniqueIndex hardens the soft (user_id, lowercased name, type)
// uniqueness invariant at the storage level. With it, concurrent seeding
// from independent replicas degrades to a duplicate-key error instead of
// duplicate rows.
const categoryUniqueIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_user_name_type
ON categories (user_id, lower(name), type)`

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll brings the schema to the current version
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.db.AutoMigrate(&model.Category{}, &model.Transaction{}); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.db.Exec(categoryUniqueIndex).Error; err != nil {
		m.logger.Error("Failed to create category uniqueness index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.recordVersion(CurrentSchemaVersion); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// CurrentVersion returns the most recently applied schema version, or the
// empty string for a fresh database
func (m *MigrationManager) CurrentVersion() (string, error) {
	var record model.MigrationVersion
	err := m.db.Order("id DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return "", err
	}
	return record.Version, nil
}

// recordVersion stores the applied schema version
func (m *MigrationManager) recordVersion(version string) error {
	record := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
	}
	if err := m.db.Create(&record).Error; err != nil {
		m.logger.Error("Failed to record schema version", map[string]any{
			"error":   err.Error(),
			"version": version,
		})
		return err
	}
	return nil
}
