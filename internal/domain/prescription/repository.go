package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a prescription without its medication lines; lines are
	// attached afterwards so that a failing line cannot roll the order back.
	Create(ctx context.Context, p *Prescription) error

	// GetByID retrieves a prescription with its courses preloaded.
	// Returns ErrPrescriptionNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)

	// ListByPatient returns a patient's prescriptions, newest first, with
	// courses preloaded.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)

	// Delete removes a prescription and cascades to its medication courses.
	// Reminder rows are intentionally left in place.
	Delete(ctx context.Context, id uuid.UUID) error
}
