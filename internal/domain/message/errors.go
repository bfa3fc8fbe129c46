package message

import "errors"

var (
	ErrMessageNotFound        = errors.New("message not found")
	ErrContentRequired        = errors.New("message content is required")
	ErrNoDoctorForSpecialty   = errors.New("no doctor found with the requested specialization")
	ErrSpecializationNotSet   = errors.New("doctor specialization is not set")
	ErrMessageAlreadyResolved = errors.New("message has already been resolved")
)
