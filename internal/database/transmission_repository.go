package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TransmissionRepository provides database operations for transmissions
type TransmissionRepository struct {
	db *gorm.DB
}

// NewTransmissionRepository creates a new repository instance
func NewTransmissionRepository(db *gorm.DB) *TransmissionRepository {
	return &TransmissionRepository{db: db}
}

// Create stores a transmission
func (r *TransmissionRepository) Create(t *Transmission) error {
	if t == nil {
		return fmt.Errorf("transmission cannot be nil")
	}

	if !t.IsValid() {
		return fmt.Errorf("transmission is not valid: unit_ms=%d, started_at=%v", t.UnitMS, t.StartedAt)
	}

	t.SanitizeFields()
	return r.db.Create(t).Error
}

// GetByID finds a transmission by its ID
func (r *TransmissionRepository) GetByID(id uint) (*Transmission, error) {
	var t Transmission
	err := r.db.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Recent returns the newest transmissions first
func (r *TransmissionRepository) Recent(limit int) ([]Transmission, error) {
	var ts []Transmission
	err := r.db.Order("started_at DESC").Order("id DESC").
		Limit(limit).
		Find(&ts).Error
	return ts, err
}

// Since returns transmissions started after the specified time, oldest first
func (r *TransmissionRepository) Since(since time.Time, limit int) ([]Transmission, error) {
	var ts []Transmission
	err := r.db.Where("started_at > ?", since).
		Order("started_at ASC").
		Limit(limit).
		Find(&ts).Error
	return ts, err
}

// Count returns the total number of stored transmissions
func (r *TransmissionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&Transmission{}).Count(&count).Error
	return count, err
}

// DeleteBefore removes transmissions started before the specified time
func (r *TransmissionRepository) DeleteBefore(before time.Time) (int64, error) {
	res := r.db.Where("started_at < ?", before).Delete(&Transmission{})
	return res.RowsAffected, res.Error
}

// Statistics summarizes the stored history
type Statistics struct {
	Transmissions int64
	Letters       int64
	Dropped       int64
	KeyedMS       int64
}

// GetStatistics returns totals over the whole history
func (r *TransmissionRepository) GetStatistics() (Statistics, error) {
	var stats Statistics
	err := r.db.Model(&Transmission{}).
		Select("COUNT(*) AS transmissions, COALESCE(SUM(letters), 0) AS letters, " +
			"COALESCE(SUM(dropped), 0) AS dropped, COALESCE(SUM(keyed_ms), 0) AS keyed_ms").
		Scan(&stats).Error
	return stats, err
}

// HealthCheck verifies the repository is working correctly
func (r *TransmissionRepository) HealthCheck() error {
	var count int64
	return r.db.Model(&Transmission{}).Count(&count).Error
}
