package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain"
	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/message"
	"github.com/prescripto/prescripto/internal/domain/prescription"
	"github.com/prescripto/prescripto/pkg/metrics"
)

func newPrescriptionService(
	prescriptions *mockPrescriptionRepo,
	medications *mockMedicationRepo,
	messages *mockMessageRepo,
	users *mockUserRepo,
) *PrescriptionService {
	return NewPrescriptionService(prescriptions, medications, messages, users, newTestAuditService(), metrics.NewCollector("test"), zap.NewNop())
}

func doctorLookup(doctorID uuid.UUID) *mockUserRepo {
	return &mockUserRepo{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "Asha", LastName: "Rao", Role: domain.RoleDoctor}, nil
		},
	}
}

func TestRespondToReportIssuesPrescription(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	msg := &message.Message{ID: uuid.New(), SenderID: patientID, Specialization: "cardiology"}
	now := day("2026-03-12")

	var savedPrescription *prescription.Prescription
	prescriptions := &mockPrescriptionRepo{
		CreateFn: func(_ context.Context, p *prescription.Prescription) error {
			p.ID = uuid.New()
			savedPrescription = p
			return nil
		},
	}
	var courses []*medication.Medication
	medications := &mockMedicationRepo{
		CreateFn: func(_ context.Context, m *medication.Medication) error {
			m.ID = uuid.New()
			courses = append(courses, m)
			return nil
		},
	}
	resolved := false
	messages := &mockMessageRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*message.Message, error) {
			return msg, nil
		},
		MarkResolvedFn: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, msg.ID, id)
			resolved = true
			return nil
		},
	}

	svc := newPrescriptionService(prescriptions, medications, messages, doctorLookup(doctorID))
	view, err := svc.RespondToReport(context.Background(), msg.ID, &prescription.IssueCommand{
		DoctorID:  doctorID,
		Diagnosis: "hypertension",
		Lines: []prescription.MedicationLine{
			{Name: "Amlodipine", DosageTiming: "0-0-1", DurationDays: 30},
		},
	}, "doctor", now, "10.0.0.1")

	assert.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, patientID, savedPrescription.PatientID, "patient comes from the report sender")
	assert.Len(t, courses, 1)
	assert.Equal(t, day("2026-03-12"), *courses[0].StartDate, "missing start defaults to today")
	assert.Equal(t, day("2026-04-11"), *courses[0].EndDate)
	assert.Len(t, view.Medications, 1)
	assert.Equal(t, "Asha Rao", view.DoctorName)
}

func TestRespondToReportSkipsBadLines(t *testing.T) {
	doctorID := uuid.New()
	msg := &message.Message{ID: uuid.New(), SenderID: uuid.New()}

	prescriptions := &mockPrescriptionRepo{
		CreateFn: func(_ context.Context, p *prescription.Prescription) error {
			p.ID = uuid.New()
			return nil
		},
	}
	var created []string
	medications := &mockMedicationRepo{
		CreateFn: func(_ context.Context, m *medication.Medication) error {
			if m.Name == "Cursed" {
				return errors.New("db down")
			}
			m.ID = uuid.New()
			created = append(created, m.Name)
			return nil
		},
	}
	messages := &mockMessageRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*message.Message, error) {
			return msg, nil
		},
		MarkResolvedFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	svc := newPrescriptionService(prescriptions, medications, messages, doctorLookup(doctorID))
	view, err := svc.RespondToReport(context.Background(), msg.ID, &prescription.IssueCommand{
		DoctorID:  doctorID,
		Diagnosis: "flu",
		Lines: []prescription.MedicationLine{
			{Name: "Paracetamol", DurationDays: 3},
			{Name: "", DurationDays: 5},
			{Name: "Backdated", DurationDays: -1},
			{Name: "Cursed", DurationDays: 2},
			{Name: "Vitamin C", DurationDays: 7},
		},
	}, "doctor", day("2026-03-12"), "10.0.0.1")

	assert.NoError(t, err, "bad lines must not sink the prescription")
	assert.Equal(t, []string{"Paracetamol", "Vitamin C"}, created)
	assert.Len(t, view.Medications, 2)
}

func TestRespondToReportResolveFailureIsNotFatal(t *testing.T) {
	doctorID := uuid.New()
	msg := &message.Message{ID: uuid.New(), SenderID: uuid.New()}

	prescriptions := &mockPrescriptionRepo{
		CreateFn: func(_ context.Context, p *prescription.Prescription) error {
			p.ID = uuid.New()
			return nil
		},
	}
	medications := &mockMedicationRepo{
		CreateFn: func(_ context.Context, m *medication.Medication) error {
			m.ID = uuid.New()
			return nil
		},
	}
	messages := &mockMessageRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*message.Message, error) {
			return msg, nil
		},
		MarkResolvedFn: func(_ context.Context, _ uuid.UUID) error {
			return errors.New("deadlock")
		},
	}

	svc := newPrescriptionService(prescriptions, medications, messages, doctorLookup(doctorID))
	_, err := svc.RespondToReport(context.Background(), msg.ID, &prescription.IssueCommand{
		DoctorID:  doctorID,
		Diagnosis: "flu",
		Lines:     []prescription.MedicationLine{{Name: "Paracetamol", DurationDays: 3}},
	}, "doctor", day("2026-03-12"), "10.0.0.1")

	assert.NoError(t, err)
}

func TestRespondToReportValidation(t *testing.T) {
	svc := newPrescriptionService(&mockPrescriptionRepo{}, &mockMedicationRepo{}, &mockMessageRepo{}, &mockUserRepo{})

	_, err := svc.RespondToReport(context.Background(), uuid.New(), &prescription.IssueCommand{
		Diagnosis: "flu",
	}, "patient", day("2026-03-12"), "10.0.0.1")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.RespondToReport(context.Background(), uuid.New(), &prescription.IssueCommand{
		Diagnosis: "   ",
	}, "doctor", day("2026-03-12"), "10.0.0.1")
	assert.ErrorIs(t, err, prescription.ErrDiagnosisRequired)

	_, err = svc.RespondToReport(context.Background(), uuid.New(), &prescription.IssueCommand{
		Diagnosis: "flu",
	}, "doctor", day("2026-03-12"), "10.0.0.1")
	assert.ErrorIs(t, err, prescription.ErrNoMedicationLines)
}

func TestRespondToReportAlreadyResolved(t *testing.T) {
	messages := &mockMessageRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*message.Message, error) {
			return &message.Message{ID: uuid.New(), SenderID: uuid.New(), Resolved: true}, nil
		},
	}
	svc := newPrescriptionService(&mockPrescriptionRepo{}, &mockMedicationRepo{}, messages, &mockUserRepo{})

	_, err := svc.RespondToReport(context.Background(), uuid.New(), &prescription.IssueCommand{
		DoctorID:  uuid.New(),
		Diagnosis: "flu",
		Lines:     []prescription.MedicationLine{{Name: "Paracetamol", DurationDays: 3}},
	}, "doctor", day("2026-03-12"), "10.0.0.1")

	assert.ErrorIs(t, err, message.ErrMessageAlreadyResolved)
}

func TestRespondToReportUnknownMessage(t *testing.T) {
	messages := &mockMessageRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*message.Message, error) {
			return nil, message.ErrMessageNotFound
		},
	}
	svc := newPrescriptionService(&mockPrescriptionRepo{}, &mockMedicationRepo{}, messages, &mockUserRepo{})

	_, err := svc.RespondToReport(context.Background(), uuid.New(), &prescription.IssueCommand{
		Diagnosis: "flu",
		Lines:     []prescription.MedicationLine{{Name: "Paracetamol", DurationDays: 3}},
	}, "doctor", day("2026-03-12"), "10.0.0.1")

	assert.ErrorIs(t, err, message.ErrMessageNotFound)
}

func TestListForPatientDenormalizesDoctorName(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	prescriptions := &mockPrescriptionRepo{
		ListByPatientFn: func(_ context.Context, _ uuid.UUID) ([]*prescription.Prescription, error) {
			return []*prescription.Prescription{
				{ID: uuid.New(), DoctorID: doctorID, PatientID: patientID, Diagnosis: "flu"},
				{ID: uuid.New(), DoctorID: doctorID, PatientID: patientID, Diagnosis: "cold"},
			}, nil
		},
	}
	lookups := 0
	users := &mockUserRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			lookups++
			return &domain.User{ID: doctorID, FirstName: "Asha", LastName: "Rao", Role: domain.RoleDoctor}, nil
		},
	}

	svc := newPrescriptionService(prescriptions, &mockMedicationRepo{}, &mockMessageRepo{}, users)
	views, err := svc.ListForPatient(context.Background(), patientID)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, views[0].DoctorName, views[1].DoctorName)
	assert.Equal(t, 1, lookups, "doctor names are cached per call")
}

func TestDeletePrescription(t *testing.T) {
	id := uuid.New()
	deleted := false
	prescriptions := &mockPrescriptionRepo{
		GetByIDFn: func(_ context.Context, _ uuid.UUID) (*prescription.Prescription, error) {
			return &prescription.Prescription{ID: id}, nil
		},
		DeleteFn: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			deleted = true
			return nil
		},
	}

	svc := newPrescriptionService(prescriptions, &mockMedicationRepo{}, &mockMessageRepo{}, &mockUserRepo{})

	err := svc.Delete(context.Background(), id, uuid.New(), "patient", "10.0.0.1")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, deleted)

	err = svc.Delete(context.Background(), id, uuid.New(), "doctor", "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, deleted)
}
