package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prescripto/prescripto/internal/domain/medication"
)

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) Create(ctx context.Context, m *medication.Medication) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("creating medication: %w", err)
	}
	return nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*medication.Medication, error) {
	var m medication.Medication
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, medication.ErrMedicationNotFound
		}
		return nil, fmt.Errorf("getting medication: %w", err)
	}
	return &m, nil
}

func (r *MedicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*medication.Medication, error) {
	var meds []*medication.Medication
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at").
		Find(&meds).Error
	if err != nil {
		return nil, fmt.Errorf("listing medications: %w", err)
	}
	return meds, nil
}
