package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prescripto/prescripto/internal/domain/medication"
	"github.com/prescripto/prescripto/internal/domain/prescription"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *prescription.Prescription) error {
	// Lines are persisted separately by the issuance boundary so a failing
	// line cannot roll the order back.
	if err := r.db.WithContext(ctx).Omit("Medications").Create(p).Error; err != nil {
		return fmt.Errorf("creating prescription: %w", err)
	}
	return nil
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*prescription.Prescription, error) {
	var p prescription.Prescription
	err := r.db.WithContext(ctx).Preload("Medications").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, prescription.ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("getting prescription: %w", err)
	}
	return &p, nil
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*prescription.Prescription, error) {
	var prescriptions []*prescription.Prescription
	err := r.db.WithContext(ctx).
		Preload("Medications").
		Where("patient_id = ?", patientID).
		Order("issued_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	return prescriptions, nil
}

// Delete removes the prescription and its medication courses atomically.
// Reminder rows referencing the deleted courses are kept.
func (r *PrescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prescription_id = ?", id).Delete(&medication.Medication{}).Error; err != nil {
			return fmt.Errorf("deleting medication courses: %w", err)
		}
		if err := tx.Delete(&prescription.Prescription{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting prescription: %w", err)
		}
		return nil
	})
}
