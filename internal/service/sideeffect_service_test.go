package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/sideeffect"
)

func TestLogSideEffect(t *testing.T) {
	patientID := uuid.New()
	med := course(patientID, "2026-03-10", 5)

	var saved *sideeffect.Log
	logs := &mockSideEffectRepo{
		CreateFn: func(_ context.Context, l *sideeffect.Log) error {
			l.ID = uuid.New()
			saved = l
			return nil
		},
	}
	medications := &mockMedicationRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*medication.Medication, error) {
			return med, nil
		},
	}

	svc := NewSideEffectService(logs, medications, zap.NewNop())
	l, err := svc.Log(context.Background(), patientID, &LogSideEffectCommand{
		MedicationID: med.ID,
		Description:  "mild dizziness after the morning dose",
		Severity:     "LOW",
	}, day("2026-03-12").Add(14*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, patientID, saved.PatientID)
	assert.Equal(t, day("2026-03-12"), l.LoggedAt, "timestamps collapse to the calendar day")
}

func TestLogSideEffectForeignCourse(t *testing.T) {
	med := course(uuid.New(), "2026-03-10", 5)
	medications := &mockMedicationRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*medication.Medication, error) {
			return med, nil
		},
	}

	svc := NewSideEffectService(&mockSideEffectRepo{}, medications, zap.NewNop())
	_, err := svc.Log(context.Background(), uuid.New(), &LogSideEffectCommand{
		MedicationID: med.ID,
		Description:  "nausea",
	}, day("2026-03-12"))

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLogSideEffectRequiresDescription(t *testing.T) {
	svc := NewSideEffectService(&mockSideEffectRepo{}, &mockMedicationRepo{}, zap.NewNop())

	_, err := svc.Log(context.Background(), uuid.New(), &LogSideEffectCommand{
		MedicationID: uuid.New(),
		Description:  "  ",
	}, day("2026-03-12"))

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}
