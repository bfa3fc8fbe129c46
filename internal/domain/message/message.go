package message

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank maps a severity onto a sortable priority. Unknown or missing values
// rank as LOW.
func (s Severity) Rank() int {
	switch Severity(strings.ToUpper(string(s))) {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// Canonical collapses free-form severity input to one of the known levels,
// or "unknown". Severity is caller-supplied, so anything feeding a metric
// label goes through here to keep the label set bounded.
func (s Severity) Canonical() string {
	switch up := Severity(strings.ToUpper(string(s))); up {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return string(up)
	}
	return "unknown"
}

// Message is a patient's symptom report, routed to the pool of doctors that
// share the requested specialization. ReceiverID holds the pool's first doctor
// to satisfy the foreign key; inbox queries filter by Specialization, not by
// receiver.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	SenderID   uuid.UUID `gorm:"column:sender_id;type:uuid;not null;index"`
	ReceiverID uuid.UUID `gorm:"column:receiver_id;type:uuid;not null;index"`

	Specialization string   `gorm:"column:specialization;type:varchar(100);not null;index"`
	Content        string   `gorm:"column:content;type:text;not null"`
	Severity       Severity `gorm:"column:severity;type:varchar(20)"`

	Resolved bool `gorm:"column:resolved;not null;default:false;index"`
}

func (Message) TableName() string {
	return "clinical.messages"
}

type SubmitCommand struct {
	PatientID   uuid.UUID
	DiseaseType string
	Content     string
	Severity    Severity
}

type View struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patientId"`
	PatientName    string    `json:"patientName"`
	Specialization string    `json:"specialization"`
	Content        string    `json:"content"`
	Severity       Severity  `json:"severity"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
