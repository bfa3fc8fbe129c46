package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new reminder row. Returns ErrDuplicateReminder when a
	// row for the same (medication, date) pair already exists.
	Create(ctx context.Context, r *Reminder) error

	// GetByMedicationAndDate retrieves the single row for a (medication, date)
	// pair. Returns ErrReminderNotFound if absent.
	GetByMedicationAndDate(ctx context.Context, medicationID uuid.UUID, date time.Time) (*Reminder, error)

	// ListByPatientAndDate returns all of a patient's reminder rows for a date.
	ListByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*Reminder, error)

	// Update persists mutations to an existing row (taken flag, day number).
	Update(ctx context.Context, r *Reminder) error
}
