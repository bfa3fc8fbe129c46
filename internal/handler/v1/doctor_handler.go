package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prescripto/prescripto/internal/domain/prescription"
	"github.com/prescripto/prescripto/internal/handler/middleware"
	"github.com/prescripto/prescripto/internal/service"
)

// DoctorHandler serves the doctor-facing surface: the symptom report inbox,
// prescription issuance, and per-course side effect review.
type DoctorHandler struct {
	messageSvc      *service.MessageService
	prescriptionSvc *service.PrescriptionService
	sideEffectSvc   *service.SideEffectService
}

func NewDoctorHandler(
	messageSvc *service.MessageService,
	prescriptionSvc *service.PrescriptionService,
	sideEffectSvc *service.SideEffectService,
) *DoctorHandler {
	return &DoctorHandler{
		messageSvc:      messageSvc,
		prescriptionSvc: prescriptionSvc,
		sideEffectSvc:   sideEffectSvc,
	}
}

// Inbox returns the unresolved symptom reports for the caller's
// specialization, highest severity first.
func (h *DoctorHandler) Inbox(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	views, err := h.messageSvc.Inbox(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, views)
}

type medicationLineRequest struct {
	Name         string `json:"name" binding:"required"`
	DosageTiming string `json:"dosageTiming"`
	DurationDays int    `json:"durationDays"`
	StartDate    string `json:"startDate"`
}

type respondRequest struct {
	Diagnosis   string                  `json:"diagnosis" binding:"required"`
	Medications []medicationLineRequest `json:"medications" binding:"required,min=1"`
}

// Respond issues a prescription in answer to a symptom report and resolves it.
func (h *DoctorHandler) Respond(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	messageID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req respondRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]prescription.MedicationLine, 0, len(req.Medications))
	for _, m := range req.Medications {
		line := prescription.MedicationLine{
			Name:         m.Name,
			DosageTiming: m.DosageTiming,
			DurationDays: m.DurationDays,
		}
		if m.StartDate != "" {
			d, err := time.Parse(time.DateOnly, m.StartDate)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid startDate: must be YYYY-MM-DD")
				return
			}
			line.StartDate = &d
		}
		lines = append(lines, line)
	}

	view, err := h.prescriptionSvc.RespondToReport(c.Request.Context(), messageID, &prescription.IssueCommand{
		DoctorID:  claims.UserID,
		Diagnosis: req.Diagnosis,
		Lines:     lines,
	}, string(claims.Role), time.Now().UTC(), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, view)
}

// DeletePrescription removes a prescription and its medication courses.
func (h *DoctorHandler) DeletePrescription(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.prescriptionSvc.Delete(c.Request.Context(), id, claims.UserID, string(claims.Role), c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MedicationSideEffects lists the side effects logged against a course.
func (h *DoctorHandler) MedicationSideEffects(c *gin.Context) {
	medicationID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	logs, err := h.sideEffectSvc.ListForMedication(c.Request.Context(), medicationID)
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
