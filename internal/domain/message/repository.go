package message

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error

	// GetByID returns ErrMessageNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// ListUnresolvedBySpecialization returns open reports for a specialization,
	// oldest first. Severity ordering is applied by the service layer.
	ListUnresolvedBySpecialization(ctx context.Context, specialization string) ([]*Message, error)

	// MarkResolved flips the resolved flag.
	MarkResolved(ctx context.Context, id uuid.UUID) error
}
