package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prescripto/prescripto/internal/domain/message"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, message.ErrMessageNotFound
		}
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) ListUnresolvedBySpecialization(ctx context.Context, specialization string) ([]*message.Message, error) {
	var msgs []*message.Message
	err := r.db.WithContext(ctx).
		Where("specialization = ? AND resolved = false", specialization).
		Order("created_at").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("listing unresolved messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&message.Message{}).Where("id = ?", id).Update("resolved", true)
	if res.Error != nil {
		return fmt.Errorf("marking message resolved: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}
