package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prescripto/prescripto/internal/config"
	"github.com/prescripto/prescripto/internal/domain"
	"github.com/prescripto/prescripto/internal/handler/middleware"
	v1 "github.com/prescripto/prescripto/internal/handler/v1"
	"github.com/prescripto/prescripto/pkg/auth"
	"github.com/prescripto/prescripto/pkg/metrics"
)

type RouterDeps struct {
	Config    *config.Config
	Logger    *zap.Logger
	JWT       *auth.JWTManager
	Collector *metrics.Collector

	Auth    *v1.AuthHandler
	Patient *v1.PatientHandler
	Doctor  *v1.DoctorHandler
}

// NewRouter assembles the HTTP surface: public auth endpoints, the
// role-guarded patient and doctor APIs, and the ops endpoints.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(deps.Collector),
		middleware.CORS(deps.Config.CORS),
		middleware.RateLimit(deps.Config.RateLimit),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(deps.Collector.Handler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
	}

	patient := api.Group("/patient", middleware.Auth(deps.JWT), middleware.RequireRole(domain.RolePatient))
	{
		patient.POST("/symptoms", deps.Patient.SubmitSymptoms)
		patient.GET("/prescriptions", deps.Patient.ListPrescriptions)
		patient.GET("/reminders/today", deps.Patient.TodayReminders)
		patient.POST("/medications/:id/taken", deps.Patient.MarkTaken)
		patient.POST("/side-effects", deps.Patient.LogSideEffect)
		patient.GET("/side-effects", deps.Patient.ListSideEffects)
	}

	doctor := api.Group("/doctor", middleware.Auth(deps.JWT), middleware.RequireRole(domain.RoleDoctor))
	{
		doctor.GET("/inbox", deps.Doctor.Inbox)
		doctor.POST("/messages/:id/respond", deps.Doctor.Respond)
		doctor.DELETE("/prescriptions/:id", deps.Doctor.DeletePrescription)
		doctor.GET("/medications/:id/side-effects", deps.Doctor.MedicationSideEffects)
	}

	return r
}
