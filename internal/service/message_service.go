package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/domain/message"
	"github.com/prescripto/prescripto/pkg/metrics"
)

type MessageService struct {
	messages  message.Repository
	users     UserRepository
	auditSvc  *AuditService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewMessageService(messages message.Repository, users UserRepository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, auditSvc: auditSvc, collector: collector, log: log}
}

// Submit routes a patient's symptom report to the pool of doctors with the
// requested specialization. The report carries the specialization so any
// doctor in the pool sees it; the receiver field only pins the pool's first
// member.
func (s *MessageService) Submit(ctx context.Context, cmd *message.SubmitCommand, ip string) (*message.Message, error) {
	if strings.TrimSpace(cmd.Content) == "" {
		return nil, message.ErrContentRequired
	}

	doctors, err := s.users.ListDoctorsBySpecialization(ctx, cmd.DiseaseType)
	if err != nil {
		return nil, fmt.Errorf("finding doctors: %w", err)
	}
	if len(doctors) == 0 {
		return nil, message.ErrNoDoctorForSpecialty
	}

	msg := &message.Message{
		SenderID:       cmd.PatientID,
		ReceiverID:     doctors[0].ID,
		Specialization: cmd.DiseaseType,
		Content:        cmd.Content,
		Severity:       cmd.Severity,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating symptom report: %w", err)
	}

	s.collector.SymptomReportsTotal.WithLabelValues(msg.Severity.Canonical()).Inc()
	s.log.Info("symptom report routed",
		zap.String("specialization", cmd.DiseaseType),
		zap.Int("pool_size", len(doctors)),
	)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: cmd.PatientID, UserRole: "patient",
		Action: "create", ResourceType: "message", ResourceID: msg.ID.String(), IPAddress: ip,
	})

	return msg, nil
}

// Inbox returns the unresolved reports for the doctor's specialization,
// highest severity first, ties broken by submission time.
func (s *MessageService) Inbox(ctx context.Context, doctorID uuid.UUID) ([]message.View, error) {
	doctor, err := s.users.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Specialization == "" {
		return nil, message.ErrSpecializationNotSet
	}

	msgs, err := s.messages.ListUnresolvedBySpecialization(ctx, doctor.Specialization)
	if err != nil {
		return nil, fmt.Errorf("listing symptom reports: %w", err)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		ri, rj := msgs[i].Severity.Rank(), msgs[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	views := make([]message.View, 0, len(msgs))
	patientNames := make(map[uuid.UUID]string)
	for _, m := range msgs {
		name, ok := patientNames[m.SenderID]
		if !ok {
			if patient, err := s.users.GetByID(ctx, m.SenderID); err == nil {
				name = patient.FullName()
			}
			patientNames[m.SenderID] = name
		}
		views = append(views, message.View{
			ID:             m.ID,
			PatientID:      m.SenderID,
			PatientName:    name,
			Specialization: m.Specialization,
			Content:        m.Content,
			Severity:       m.Severity,
			SubmittedAt:    m.CreatedAt,
		})
	}

	return views, nil
}
