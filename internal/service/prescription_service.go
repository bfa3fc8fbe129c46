package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/message"
	"github.com/prescripto/prescripto/internal/domain/prescription"
	"github.com/prescripto/prescripto/pkg/metrics"
)

type PrescriptionService struct {
	prescriptions prescription.Repository
	medications   medication.Repository
	messages      message.Repository
	users         UserRepository
	auditSvc      *AuditService
	collector     *metrics.Collector
	log           *zap.Logger
}

func NewPrescriptionService(prescriptions prescription.Repository, medications medication.Repository, messages message.Repository, users UserRepository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		medications:   medications,
		messages:      messages,
		users:         users,
		auditSvc:      auditSvc,
		collector:     collector,
		log:           log,
	}
}

// RespondToReport issues a prescription in answer to a patient's symptom
// report and marks the report resolved. One medication course is created per
// usable line; a line that fails to persist is logged and skipped without
// rolling back the prescription.
func (s *PrescriptionService) RespondToReport(ctx context.Context, messageID uuid.UUID, cmd *prescription.IssueCommand, callerRole string, now time.Time, ip string) (*prescription.View, error) {
	if callerRole != "doctor" {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(cmd.Diagnosis) == "" {
		return nil, prescription.ErrDiagnosisRequired
	}
	if len(cmd.Lines) == 0 {
		return nil, prescription.ErrNoMedicationLines
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.Resolved {
		return nil, message.ErrMessageAlreadyResolved
	}

	p := &prescription.Prescription{
		DoctorID:  cmd.DoctorID,
		PatientID: msg.SenderID,
		Diagnosis: cmd.Diagnosis,
		IssuedAt:  now,
	}

	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating prescription: %w", err)
	}

	s.collector.PrescriptionsIssued.Inc()

	p.Medications = s.createCourses(ctx, p.ID, msg.SenderID, cmd.Lines, now)

	if err := s.messages.MarkResolved(ctx, msg.ID); err != nil {
		// The prescription is already saved; a stale inbox entry is the
		// lesser harm.
		s.log.Error("failed to mark symptom report resolved",
			zap.String("message_id", msg.ID.String()),
			zap.Error(err),
		)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: cmd.DoctorID, UserRole: callerRole,
		Action: "create", ResourceType: "prescription", ResourceID: p.ID.String(), IPAddress: ip,
	})

	doctor, err := s.users.GetByID(ctx, cmd.DoctorID)
	doctorName := ""
	if err == nil {
		doctorName = doctor.FullName()
	}

	v := prescription.NewView(p, doctorName)
	return &v, nil
}

// createCourses persists one medication course per usable line. Failures are
// collected and logged, never escalated: a bad line must not sink the order.
func (s *PrescriptionService) createCourses(ctx context.Context, prescriptionID, patientID uuid.UUID, lines []prescription.MedicationLine, now time.Time) []medication.Medication {
	created := make([]medication.Medication, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			continue
		}
		if line.DurationDays < 0 {
			s.collector.MedicationLineErrors.Inc()
			s.log.Warn("skipping medication line with negative duration",
				zap.Int("line", i),
				zap.String("name", line.Name),
			)
			continue
		}

		start := medication.Day(now)
		if line.StartDate != nil {
			start = medication.Day(*line.StartDate)
		}
		end := medication.DeriveEndDate(start, line.DurationDays)

		med := medication.Medication{
			PrescriptionID: prescriptionID,
			PatientID:      patientID,
			Name:           line.Name,
			DosageTiming:   line.DosageTiming,
			DurationDays:   line.DurationDays,
			StartDate:      &start,
			EndDate:        &end,
		}

		if err := s.medications.Create(ctx, &med); err != nil {
			s.collector.MedicationLineErrors.Inc()
			s.log.Warn("failed to create medication course, skipping line",
				zap.Int("line", i),
				zap.String("name", line.Name),
				zap.Error(err),
			)
			continue
		}
		created = append(created, med)
	}
	return created
}

// ListForPatient returns a patient's prescriptions as denormalized views.
func (s *PrescriptionService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]prescription.View, error) {
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}

	doctorNames := make(map[uuid.UUID]string)
	views := make([]prescription.View, 0, len(prescriptions))
	for _, p := range prescriptions {
		name, ok := doctorNames[p.DoctorID]
		if !ok {
			if doctor, err := s.users.GetByID(ctx, p.DoctorID); err == nil {
				name = doctor.FullName()
			}
			doctorNames[p.DoctorID] = name
		}
		views = append(views, prescription.NewView(p, name))
	}

	return views, nil
}

// Delete removes a prescription and its medication courses. Doctor only.
// Reminder rows for the deleted courses are kept for adherence history.
func (s *PrescriptionService) Delete(ctx context.Context, id, callerID uuid.UUID, callerRole string, ip string) error {
	if callerRole != "doctor" {
		return ErrForbidden
	}

	if _, err := s.prescriptions.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.prescriptions.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting prescription: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: callerRole,
		Action: "delete", ResourceType: "prescription", ResourceID: id.String(), IPAddress: ip,
	})

	return nil
}
