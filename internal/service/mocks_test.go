package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain"
	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/message"
	"github.com/prescripto/prescripto/internal/domain/prescription"
	"github.com/prescripto/prescripto/internal/domain/reminder"
	"github.com/prescripto/prescripto/internal/domain/sideeffect"
	"github.com/prescripto/prescripto/pkg/metrics"
)

type mockUserRepo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	GetByEmailFn         func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListDoctorsFn        func(ctx context.Context, specialization string) ([]*domain.User, error)
	UpdateLoginAttemptFn func(ctx context.Context, id uuid.UUID, success bool) error
}

var _ UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.CreateFn(ctx, u)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) ListDoctorsBySpecialization(ctx context.Context, specialization string) ([]*domain.User, error) {
	return m.ListDoctorsFn(ctx, specialization)
}

func (m *mockUserRepo) UpdateLoginAttempt(ctx context.Context, id uuid.UUID, success bool) error {
	if m.UpdateLoginAttemptFn != nil {
		return m.UpdateLoginAttemptFn(ctx, id, success)
	}
	return nil
}

type mockMedicationRepo struct {
	CreateFn        func(ctx context.Context, med *medication.Medication) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*medication.Medication, error)
	ListByPatientFn func(ctx context.Context, patientID uuid.UUID) ([]*medication.Medication, error)
}

var _ medication.Repository = (*mockMedicationRepo)(nil)

func (m *mockMedicationRepo) Create(ctx context.Context, med *medication.Medication) error {
	return m.CreateFn(ctx, med)
}

func (m *mockMedicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*medication.Medication, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockMedicationRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*medication.Medication, error) {
	return m.ListByPatientFn(ctx, patientID)
}

type mockReminderRepo struct {
	CreateFn                 func(ctx context.Context, r *reminder.Reminder) error
	GetByMedicationAndDateFn func(ctx context.Context, medicationID uuid.UUID, date time.Time) (*reminder.Reminder, error)
	ListByPatientAndDateFn   func(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*reminder.Reminder, error)
	UpdateFn                 func(ctx context.Context, r *reminder.Reminder) error
}

var _ reminder.Repository = (*mockReminderRepo)(nil)

func (m *mockReminderRepo) Create(ctx context.Context, r *reminder.Reminder) error {
	return m.CreateFn(ctx, r)
}

func (m *mockReminderRepo) GetByMedicationAndDate(ctx context.Context, medicationID uuid.UUID, date time.Time) (*reminder.Reminder, error) {
	return m.GetByMedicationAndDateFn(ctx, medicationID, date)
}

func (m *mockReminderRepo) ListByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*reminder.Reminder, error) {
	return m.ListByPatientAndDateFn(ctx, patientID, date)
}

func (m *mockReminderRepo) Update(ctx context.Context, r *reminder.Reminder) error {
	return m.UpdateFn(ctx, r)
}

type mockPrescriptionRepo struct {
	CreateFn        func(ctx context.Context, p *prescription.Prescription) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error)
	ListByPatientFn func(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
}

var _ prescription.Repository = (*mockPrescriptionRepo)(nil)

func (m *mockPrescriptionRepo) Create(ctx context.Context, p *prescription.Prescription) error {
	return m.CreateFn(ctx, p)
}

func (m *mockPrescriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockPrescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	return m.ListByPatientFn(ctx, patientID)
}

func (m *mockPrescriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

type mockMessageRepo struct {
	CreateFn       func(ctx context.Context, msg *message.Message) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*message.Message, error)
	ListFn         func(ctx context.Context, specialization string) ([]*message.Message, error)
	MarkResolvedFn func(ctx context.Context, id uuid.UUID) error
}

var _ message.Repository = (*mockMessageRepo)(nil)

func (m *mockMessageRepo) Create(ctx context.Context, msg *message.Message) error {
	return m.CreateFn(ctx, msg)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockMessageRepo) ListUnresolvedBySpecialization(ctx context.Context, specialization string) ([]*message.Message, error) {
	return m.ListFn(ctx, specialization)
}

func (m *mockMessageRepo) MarkResolved(ctx context.Context, id uuid.UUID) error {
	return m.MarkResolvedFn(ctx, id)
}

type mockSideEffectRepo struct {
	CreateFn           func(ctx context.Context, l *sideeffect.Log) error
	ListByPatientFn    func(ctx context.Context, patientID uuid.UUID) ([]*sideeffect.Log, error)
	ListByMedicationFn func(ctx context.Context, medicationID uuid.UUID) ([]*sideeffect.Log, error)
}

var _ sideeffect.Repository = (*mockSideEffectRepo)(nil)

func (m *mockSideEffectRepo) Create(ctx context.Context, l *sideeffect.Log) error {
	return m.CreateFn(ctx, l)
}

func (m *mockSideEffectRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*sideeffect.Log, error) {
	return m.ListByPatientFn(ctx, patientID)
}

func (m *mockSideEffectRepo) ListByMedication(ctx context.Context, medicationID uuid.UUID) ([]*sideeffect.Log, error) {
	return m.ListByMedicationFn(ctx, medicationID)
}

type mockAuditRepo struct{}

func (mockAuditRepo) Create(context.Context, *domain.AuditLog) error { return nil }

func newTestAuditService() *AuditService {
	return NewAuditService(mockAuditRepo{}, metrics.NewCollector("test"), zap.NewNop())
}
