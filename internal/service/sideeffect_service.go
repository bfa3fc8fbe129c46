package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/sideeffect"
)

type SideEffectService struct {
	logs        sideeffect.Repository
	medications medication.Repository
	log         *zap.Logger
}

func NewSideEffectService(logs sideeffect.Repository, medications medication.Repository, log *zap.Logger) *SideEffectService {
	return &SideEffectService{logs: logs, medications: medications, log: log}
}

type LogSideEffectCommand struct {
	MedicationID uuid.UUID
	Description  string
	Severity     string
}

// Log records a side effect against one of the caller's medication courses.
func (s *SideEffectService) Log(ctx context.Context, callerID uuid.UUID, cmd *LogSideEffectCommand, now time.Time) (*sideeffect.Log, error) {
	if strings.TrimSpace(cmd.Description) == "" {
		return nil, &ValidationError{Fields: []string{"description is required"}}
	}

	med, err := s.medications.GetByID(ctx, cmd.MedicationID)
	if err != nil {
		return nil, err
	}
	if med.PatientID != callerID {
		return nil, ErrForbidden
	}

	l := &sideeffect.Log{
		PatientID:    callerID,
		MedicationID: med.ID,
		Description:  cmd.Description,
		Severity:     cmd.Severity,
		LoggedAt:     medication.Day(now),
	}

	if err := s.logs.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating side effect log: %w", err)
	}

	return l, nil
}

// ListForPatient returns a patient's own side effect history.
func (s *SideEffectService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*sideeffect.Log, error) {
	return s.logs.ListByPatient(ctx, patientID)
}

// ListForMedication returns the side effects logged against a course;
// intended for the prescribing doctor's review.
func (s *SideEffectService) ListForMedication(ctx context.Context, medicationID uuid.UUID) ([]*sideeffect.Log, error) {
	if _, err := s.medications.GetByID(ctx, medicationID); err != nil {
		return nil, err
	}
	return s.logs.ListByMedication(ctx, medicationID)
}
