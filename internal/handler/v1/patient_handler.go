package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prescripto/prescripto/internal/domain/message"
	"github.com/prescripto/prescripto/internal/domain/sideeffect"
	"github.com/prescripto/prescripto/internal/handler/middleware"
	"github.com/prescripto/prescripto/internal/service"
)

// PatientHandler serves the patient-facing surface: symptom reports, the
// prescription list, the daily reminder checklist, and side effect logging.
type PatientHandler struct {
	messageSvc      *service.MessageService
	prescriptionSvc *service.PrescriptionService
	reminderSvc     *service.ReminderService
	sideEffectSvc   *service.SideEffectService
}

func NewPatientHandler(
	messageSvc *service.MessageService,
	prescriptionSvc *service.PrescriptionService,
	reminderSvc *service.ReminderService,
	sideEffectSvc *service.SideEffectService,
) *PatientHandler {
	return &PatientHandler{
		messageSvc:      messageSvc,
		prescriptionSvc: prescriptionSvc,
		reminderSvc:     reminderSvc,
		sideEffectSvc:   sideEffectSvc,
	}
}

type submitSymptomsRequest struct {
	DiseaseType string `json:"diseaseType" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Severity    string `json:"severity"`
}

type symptomReportResponse struct {
	ID          uuid.UUID `json:"id"`
	DiseaseType string    `json:"diseaseType"`
	Severity    string    `json:"severity"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SubmitSymptoms routes a symptom report to the matching doctor pool.
func (h *PatientHandler) SubmitSymptoms(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req submitSymptomsRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageSvc.Submit(c.Request.Context(), &message.SubmitCommand{
		PatientID:   claims.UserID,
		DiseaseType: req.DiseaseType,
		Content:     req.Content,
		Severity:    message.Severity(req.Severity),
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, symptomReportResponse{
		ID:          msg.ID,
		DiseaseType: msg.Specialization,
		Severity:    string(msg.Severity),
		SubmittedAt: msg.CreatedAt,
	})
}

// ListPrescriptions returns the caller's prescriptions, newest first.
func (h *PatientHandler) ListPrescriptions(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	views, err := h.prescriptionSvc.ListForPatient(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, views)
}

// TodayReminders returns one checklist entry per medication course due today,
// creating any rows not yet materialized for the day.
func (h *PatientHandler) TodayReminders(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	today, ok := queryDate(c)
	if !ok {
		return
	}

	views, err := h.reminderSvc.TodayReminders(c.Request.Context(), claims.UserID, today)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, views)
}

// MarkTaken records today's dose of a course as taken.
func (h *PatientHandler) MarkTaken(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	medicationID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	today, ok := queryDate(c)
	if !ok {
		return
	}

	view, err := h.reminderSvc.MarkTaken(c.Request.Context(), medicationID, claims.UserID, today, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, view)
}

type logSideEffectRequest struct {
	MedicationID uuid.UUID `json:"medicationId" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	Severity     string    `json:"severity"`
}

type sideEffectResponse struct {
	ID           uuid.UUID `json:"id"`
	MedicationID uuid.UUID `json:"medicationId"`
	Description  string    `json:"description"`
	Severity     string    `json:"severity,omitempty"`
	LoggedAt     string    `json:"loggedAt"`
}

func newSideEffectResponse(l *sideeffect.Log) sideEffectResponse {
	return sideEffectResponse{
		ID:           l.ID,
		MedicationID: l.MedicationID,
		Description:  l.Description,
		Severity:     l.Severity,
		LoggedAt:     l.LoggedAt.Format(time.DateOnly),
	}
}

// LogSideEffect records a side effect against one of the caller's courses.
func (h *PatientHandler) LogSideEffect(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req logSideEffectRequest
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.sideEffectSvc.Log(c.Request.Context(), claims.UserID, &service.LogSideEffectCommand{
		MedicationID: req.MedicationID,
		Description:  req.Description,
		Severity:     req.Severity,
	}, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, newSideEffectResponse(l))
}

// ListSideEffects returns the caller's side effect history, newest first.
func (h *PatientHandler) ListSideEffects(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	logs, err := h.sideEffectSvc.ListForPatient(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]sideEffectResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, newSideEffectResponse(l))
	}
	respondOK(c, out)
}
