package prescription

import (
	"time"

	"github.com/google/uuid"

	"github.com/prescripto/prescripto/internal/domain/medication"
)

// Prescription is the clinical order a doctor issues in response to a symptom
// report. It owns its medication courses (cascade delete).
type Prescription struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	Diagnosis string    `gorm:"column:diagnosis;type:text"`
	IssuedAt  time.Time `gorm:"column:issued_at;not null;index"`

	Medications []medication.Medication `gorm:"foreignKey:PrescriptionID"`
}

func (Prescription) TableName() string {
	return "clinical.prescriptions"
}

// MedicationLine is one requested course inside an issuance command. A nil
// StartDate defaults to the issuance day.
type MedicationLine struct {
	Name         string
	DosageTiming string
	DurationDays int
	StartDate    *time.Time
}

type IssueCommand struct {
	DoctorID  uuid.UUID
	Diagnosis string
	Lines     []MedicationLine
}

type MedicationLineView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DosageTiming string    `json:"dosageTiming"`
	DurationDays int       `json:"durationDays"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
}

type View struct {
	ID          uuid.UUID            `json:"id"`
	DoctorName  string               `json:"doctorName"`
	Diagnosis   string               `json:"diagnosis"`
	IssuedAt    time.Time            `json:"issuedAt"`
	Medications []MedicationLineView `json:"medications"`
}

// NewView snapshots a prescription and its courses for API consumers.
func NewView(p *Prescription, doctorName string) View {
	lines := make([]MedicationLineView, 0, len(p.Medications))
	for _, m := range p.Medications {
		lv := MedicationLineView{
			ID:           m.ID,
			Name:         m.Name,
			DosageTiming: m.DosageTiming,
			DurationDays: m.DurationDays,
		}
		if m.StartDate != nil {
			lv.StartDate = medication.Day(*m.StartDate).Format(time.DateOnly)
		}
		if m.EndDate != nil {
			lv.EndDate = medication.Day(*m.EndDate).Format(time.DateOnly)
		}
		lines = append(lines, lv)
	}
	return View{
		ID:          p.ID,
		DoctorName:  doctorName,
		Diagnosis:   p.Diagnosis,
		IssuedAt:    p.IssuedAt,
		Medications: lines,
	}
}
