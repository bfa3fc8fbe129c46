package reminder

import (
	"time"

	"github.com/google/uuid"

	"github.com/prescripto/prescripto/internal/domain/medication"
)

// Reminder is the per-course, per-day ledger entry recording whether a dose
// was taken. At most one row exists per (medication, date) pair; the unique
// index on that pair is what arbitrates concurrent first access.
type Reminder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	MedicationID uuid.UUID `gorm:"column:medication_id;type:uuid;not null;uniqueIndex:idx_reminders_medication_date"`
	PatientID    uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	Date  time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_reminders_medication_date"`
	Taken bool      `gorm:"column:taken;not null;default:false"`

	// DayNumber is the 1-based offset of Date within the course duration,
	// or 0 when the date fell outside the defined window at creation time.
	DayNumber int `gorm:"column:day_number;not null;default:0"`
}

func (Reminder) TableName() string {
	return "clinical.medication_reminders"
}

// MedicationView is the denormalized course snapshot carried by each reminder
// so callers never see the persistence entity graph.
type MedicationView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DosageTiming string    `json:"dosageTiming"`
	DurationDays int       `json:"durationDays"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
}

type View struct {
	ID         uuid.UUID      `json:"id"`
	Medication MedicationView `json:"medication"`
	Date       string         `json:"date"`
	Taken      bool           `json:"taken"`
	DayNumber  int            `json:"dayNumber"`
}

// NewView snapshots a reminder together with its course.
func NewView(r *Reminder, m *medication.Medication) View {
	mv := MedicationView{
		ID:           m.ID,
		Name:         m.Name,
		DosageTiming: m.DosageTiming,
		DurationDays: m.DurationDays,
	}
	if m.StartDate != nil {
		mv.StartDate = medication.Day(*m.StartDate).Format(time.DateOnly)
	}
	if m.EndDate != nil {
		mv.EndDate = medication.Day(*m.EndDate).Format(time.DateOnly)
	}
	return View{
		ID:         r.ID,
		Medication: mv,
		Date:       medication.Day(r.Date).Format(time.DateOnly),
		Taken:      r.Taken,
		DayNumber:  r.DayNumber,
	}
}
