package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/reminder"
	"github.com/prescripto/prescripto/pkg/metrics"
)

// ReminderService reconciles persisted reminder rows against the set of doses
// due on a given date, and handles the mark-taken transition. Rows are
// materialized lazily for the queried date only; nothing is pre-created for
// future dates and repeated calls are idempotent.
type ReminderService struct {
	reminders   reminder.Repository
	medications medication.Repository
	users       UserRepository
	auditSvc    *AuditService
	collector   *metrics.Collector
	log         *zap.Logger
}

func NewReminderService(reminders reminder.Repository, medications medication.Repository, users UserRepository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *ReminderService {
	return &ReminderService{reminders: reminders, medications: medications, users: users, auditSvc: auditSvc, collector: collector, log: log}
}

// TodayReminders returns one reminder per medication course due on the given
// date, creating missing rows as it goes. `today` is injected by the caller so
// the engine never reads the clock.
func (s *ReminderService) TodayReminders(ctx context.Context, patientID uuid.UUID, today time.Time) ([]reminder.View, error) {
	today = medication.Day(today)

	if _, err := s.users.GetByID(ctx, patientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	meds, err := s.medications.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("loading medication courses: %w", err)
	}

	// One bulk read of the day's rows instead of a lookup per course.
	existing, err := s.reminders.ListByPatientAndDate(ctx, patientID, today)
	if err != nil {
		return nil, fmt.Errorf("loading reminders: %w", err)
	}
	byCourse := make(map[uuid.UUID]*reminder.Reminder, len(existing))
	for _, rec := range existing {
		byCourse[rec.MedicationID] = rec
	}

	views := make([]reminder.View, 0, len(meds))
	for _, med := range meds {
		// A course should carry a start date by the time it reaches the
		// engine, but one without it must not fail the whole call.
		if med.StartDate == nil {
			start := today
			med.StartDate = &start
			s.log.Warn("medication course missing start date, defaulting to today",
				zap.String("medication_id", med.ID.String()),
			)
		}

		if !med.ActiveOn(today) {
			continue
		}

		rec, ok := byCourse[med.ID]
		if !ok {
			rec, err = s.materialize(ctx, med, patientID, today)
			if err != nil {
				return nil, err
			}
		}
		views = append(views, reminder.NewView(rec, med))
	}

	return views, nil
}

// materialize creates the reminder row for (course, date) with taken=false.
// A lost race on the (medication, date) unique index is resolved by adopting
// the winner's row, so an already-set taken flag is never reset.
func (s *ReminderService) materialize(ctx context.Context, med *medication.Medication, patientID uuid.UUID, date time.Time) (*reminder.Reminder, error) {
	rec := &reminder.Reminder{
		MedicationID: med.ID,
		PatientID:    patientID,
		Date:         date,
		Taken:        false,
		DayNumber:    med.DayNumberOn(date),
	}

	if err := s.reminders.Create(ctx, rec); err != nil {
		if errors.Is(err, reminder.ErrDuplicateReminder) {
			return s.reminders.GetByMedicationAndDate(ctx, med.ID, date)
		}
		return nil, fmt.Errorf("creating reminder: %w", err)
	}

	s.collector.RemindersCreated.Inc()
	return rec, nil
}

// MarkTaken records that the dose for a course was taken on the given date,
// creating the day's row if no prior listing materialized it. Marking an
// already-taken dose again is a no-op in effect.
func (s *ReminderService) MarkTaken(ctx context.Context, medicationID, callerID uuid.UUID, today time.Time, ip string) (*reminder.View, error) {
	today = medication.Day(today)

	med, err := s.medications.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	// Patients may only mark their own courses.
	if med.PatientID != callerID {
		return nil, ErrForbidden
	}

	rec, err := s.reminders.GetByMedicationAndDate(ctx, med.ID, today)
	switch {
	case err == nil:
	case errors.Is(err, reminder.ErrReminderNotFound):
		rec = &reminder.Reminder{MedicationID: med.ID, PatientID: med.PatientID, Date: today}
	default:
		return nil, fmt.Errorf("loading reminder: %w", err)
	}

	rec.DayNumber = takenDayNumber(med, rec, today)
	rec.Taken = true

	if rec.ID == uuid.Nil {
		err = s.reminders.Create(ctx, rec)
		if errors.Is(err, reminder.ErrDuplicateReminder) {
			// Lost the first-access race: adopt the winner's row and mark it.
			rec, err = s.reminders.GetByMedicationAndDate(ctx, med.ID, today)
			if err != nil {
				return nil, fmt.Errorf("re-reading reminder after conflict: %w", err)
			}
			rec.DayNumber = takenDayNumber(med, rec, today)
			rec.Taken = true
			err = s.reminders.Update(ctx, rec)
		}
		if err != nil {
			return nil, fmt.Errorf("persisting reminder: %w", err)
		}
	} else {
		if err := s.reminders.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("persisting reminder: %w", err)
		}
	}

	s.collector.DosesMarkedTaken.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: callerID, UserRole: "patient",
		Action: "update", ResourceType: "medication_reminder", ResourceID: rec.ID.String(), IPAddress: ip,
		Changes: `{"action":"mark_taken"}`,
	})

	v := reminder.NewView(rec, med)
	return &v, nil
}

// takenDayNumber derives the day index for a mark-taken transition. When the
// date falls outside the prescribed range an existing nonzero value is kept;
// a course with no usable schedule counts as a single-day course.
func takenDayNumber(med *medication.Medication, rec *reminder.Reminder, today time.Time) int {
	if med.StartDate != nil && med.DurationDays > 0 {
		if n := med.DayNumberOn(today); n != 0 {
			return n
		}
		return rec.DayNumber
	}
	return 1
}
