package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new medication course.
	Create(ctx context.Context, m *Medication) error

	// GetByID retrieves a course by primary key. Returns ErrMedicationNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)

	// ListByPatient returns every course owned by the patient, oldest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error)
}
