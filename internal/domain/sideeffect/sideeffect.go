package sideeffect

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLogNotFound = errors.New("side effect log not found")

// Log records a side effect a patient observed for one of their medication
// courses.
type Log struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PatientID    uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	MedicationID uuid.UUID `gorm:"column:medication_id;type:uuid;not null;index"`

	Description string    `gorm:"column:description;type:text;not null"`
	Severity    string    `gorm:"column:severity;type:varchar(20)"`
	LoggedAt    time.Time `gorm:"column:logged_at;type:date;not null"`
}

func (Log) TableName() string {
	return "clinical.side_effect_logs"
}
