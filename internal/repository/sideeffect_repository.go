package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prescripto/prescripto/internal/domain/sideeffect"
)

type SideEffectRepository struct {
	db *gorm.DB
}

func NewSideEffectRepository(db *gorm.DB) *SideEffectRepository {
	return &SideEffectRepository{db: db}
}

func (r *SideEffectRepository) Create(ctx context.Context, l *sideeffect.Log) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("creating side effect log: %w", err)
	}
	return nil
}

func (r *SideEffectRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*sideeffect.Log, error) {
	var logs []*sideeffect.Log
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("listing side effect logs by patient: %w", err)
	}
	return logs, nil
}

func (r *SideEffectRepository) ListByMedication(ctx context.Context, medicationID uuid.UUID) ([]*sideeffect.Log, error) {
	var logs []*sideeffect.Log
	err := r.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("listing side effect logs by medication: %w", err)
	}
	return logs, nil
}
