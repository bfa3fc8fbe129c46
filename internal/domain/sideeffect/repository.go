package sideeffect

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, l *Log) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Log, error)
	ListByMedication(ctx context.Context, medicationID uuid.UUID) ([]*Log, error)
}
