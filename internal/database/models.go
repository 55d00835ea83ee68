package database

import (
	"fmt"
	"strings"
	"time"
)

// Transmission is one completed write to the transmitter
type Transmission struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Text       string    `gorm:"not null" json:"text"`
	Transcript string    `gorm:"not null" json:"transcript"`
	UnitMS     int64     `gorm:"not null" json:"unit_ms"`
	KeyedMS    int64     `gorm:"not null" json:"keyed_ms"`
	Letters    int       `json:"letters"`
	Dropped    int       `json:"dropped"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Transmission) TableName() string {
	return "transmissions"
}

// Keyed returns how long the transmission held the signal
func (t Transmission) Keyed() time.Duration {
	return time.Duration(t.KeyedMS) * time.Millisecond
}

// String returns a formatted string representation
func (t Transmission) String() string {
	result := fmt.Sprintf("#%d %s %q (%d letters, %v @ %dms)",
		t.ID, t.StartedAt.Format(time.RFC3339), t.Text, t.Letters, t.Keyed(), t.UnitMS)

	if t.Dropped > 0 {
		result += fmt.Sprintf(" [%d dropped]", t.Dropped)
	}

	return result
}

// IsValid checks if the record has required fields
func (t Transmission) IsValid() bool {
	return t.UnitMS > 0 && !t.StartedAt.IsZero()
}

// SanitizeFields trims the trailing record terminator from the stored transcript
func (t *Transmission) SanitizeFields() {
	t.Transcript = strings.TrimRight(t.Transcript, "\n")
}
