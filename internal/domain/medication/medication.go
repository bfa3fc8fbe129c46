package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication is a single prescribed course: one drug, a dosage timing hint,
// and a calendar window derived from the start date and duration.
type Medication struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PrescriptionID uuid.UUID `gorm:"column:prescription_id;type:uuid;not null;index"`
	PatientID      uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	Name         string `gorm:"column:name;type:varchar(255);not null"`
	DosageTiming string `gorm:"column:dosage_timing;type:varchar(100)"` // e.g. "Morning, Night"

	// DurationDays >= 0; zero means no defined course length (single day).
	DurationDays int        `gorm:"column:duration_days;not null;default:0"`
	StartDate    *time.Time `gorm:"column:start_date;type:date"`
	EndDate      *time.Time `gorm:"column:end_date;type:date"`
}

func (Medication) TableName() string {
	return "clinical.medications"
}

// Day truncates a timestamp to its calendar date in UTC. All reminder
// bookkeeping operates on these normalized dates.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeriveEndDate computes start + durationDays, or start itself when the
// duration is zero or negative.
func DeriveEndDate(start time.Time, durationDays int) time.Time {
	if durationDays <= 0 {
		return Day(start)
	}
	return Day(start).AddDate(0, 0, durationDays)
}

// ActiveOn reports whether a dose is due on the given date: the date falls on
// or after the start and, when an end date is known, on or before it. A course
// with no start date is never active; callers backfill the start first.
func (m *Medication) ActiveOn(date time.Time) bool {
	if m.StartDate == nil {
		return false
	}
	date = Day(date)
	if date.Before(Day(*m.StartDate)) {
		return false
	}
	return m.EndDate == nil || !date.After(Day(*m.EndDate))
}

// DayNumberOn returns the 1-based index of the date within the course
// duration, or 0 when the course has no usable start/duration or the date
// falls outside [1, DurationDays].
func (m *Medication) DayNumberOn(date time.Time) int {
	if m.StartDate == nil || m.DurationDays <= 0 {
		return 0
	}
	idx := daysBetween(Day(*m.StartDate), Day(date)) + 1
	if idx < 1 || idx > m.DurationDays {
		return 0
	}
	return idx
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
