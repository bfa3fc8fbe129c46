package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/reminder"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a reminder row. The (medication_id, date) unique index is the
// arbiter under concurrent first access; a violation is surfaced as
// reminder.ErrDuplicateReminder for the caller to recover from.
func (r *ReminderRepository) Create(ctx context.Context, rec *reminder.Reminder) error {
	rec.Date = medication.Day(rec.Date)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return reminder.ErrDuplicateReminder
		}
		return fmt.Errorf("creating reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) GetByMedicationAndDate(ctx context.Context, medicationID uuid.UUID, date time.Time) (*reminder.Reminder, error) {
	var rec reminder.Reminder
	err := r.db.WithContext(ctx).
		Where("medication_id = ? AND date = ?", medicationID, medication.Day(date)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reminder.ErrReminderNotFound
		}
		return nil, fmt.Errorf("getting reminder: %w", err)
	}
	return &rec, nil
}

func (r *ReminderRepository) ListByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*reminder.Reminder, error) {
	var recs []*reminder.Reminder
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND date = ?", patientID, medication.Day(date)).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	return recs, nil
}

func (r *ReminderRepository) Update(ctx context.Context, rec *reminder.Reminder) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}
	return nil
}
