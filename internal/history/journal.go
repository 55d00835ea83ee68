// Package history persists completed transmissions.
package history

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dbehnke/morseled/internal/database"
	"github.com/dbehnke/morseled/internal/device"
)

// DatabaseJournal records device writes into the transmission repository
type DatabaseJournal struct {
	repository   *database.TransmissionRepository
	logger       *log.Logger
	debugEnabled bool

	mutex      sync.RWMutex
	recorded   uint32
	errorCount uint32
	lastRecord time.Time
}

// NewDatabaseJournal creates a journal backed by the repository
func NewDatabaseJournal(repository *database.TransmissionRepository, logger *log.Logger) *DatabaseJournal {
	return &DatabaseJournal{
		repository: repository,
		logger:     logger,
	}
}

// SetDebug enables or disables debug logging
func (j *DatabaseJournal) SetDebug(enabled bool) {
	j.debugEnabled = enabled
}

// Record implements device.Journal
func (j *DatabaseJournal) Record(entry device.Entry) error {
	t := &database.Transmission{
		Text:       entry.Text,
		Transcript: entry.Transcript,
		UnitMS:     entry.Unit.Milliseconds(),
		KeyedMS:    entry.KeyedTime.Milliseconds(),
		Letters:    entry.Letters,
		Dropped:    entry.Dropped,
		StartedAt:  entry.StartedAt,
	}

	if err := j.repository.Create(t); err != nil {
		j.mutex.Lock()
		j.errorCount++
		j.mutex.Unlock()
		return fmt.Errorf("record transmission: %w", err)
	}

	j.mutex.Lock()
	j.recorded++
	j.lastRecord = time.Now()
	j.mutex.Unlock()

	j.logDebug("Recorded %s", t)
	return nil
}

// GetStats returns journal statistics
func (j *DatabaseJournal) GetStats() (recorded, errorCount uint32, lastRecord time.Time) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()
	return j.recorded, j.errorCount, j.lastRecord
}

func (j *DatabaseJournal) logDebug(format string, args ...interface{}) {
	if j.debugEnabled && j.logger != nil {
		j.logger.Printf("[History] "+format, args...)
	}
}

var _ device.Journal = (*DatabaseJournal)(nil)
