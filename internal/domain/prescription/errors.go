package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrDiagnosisRequired    = errors.New("diagnosis is required")
	ErrNoMedicationLines    = errors.New("at least one medication line is required")
)
