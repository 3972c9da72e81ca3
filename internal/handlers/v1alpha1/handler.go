package v1alpha1

import (
	"net/http"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/handlers/validator"
	"github.com/findajob/job-triage/internal/service"
	"github.com/findajob/job-triage/pkg/requestid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ServiceHandler struct {
	processedJobSrv *service.ProcessedJobService
	statusSrv       *service.StatusService
	validator       *validator.Validator
}

func NewServiceHandler(processedJobSrv *service.ProcessedJobService, statusSrv *service.StatusService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewStatusValidationRules()...)

	return &ServiceHandler{
		processedJobSrv: processedJobSrv,
		statusSrv:       statusSrv,
		validator:       v,
	}
}

func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/processed-jobs", h.ListProcessedJobs)
		r.Get("/processed-jobs/{id}", h.GetProcessedJob)
		r.Put("/processed-jobs/{id}/status", h.UpdateStatus)
		r.Get("/job-statuses", h.ListJobStatuses)
		r.Get("/info", h.GetInfo)
	})
	router.Get("/health", h.Health)
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{Status: "ok"})
}

func writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	render.Status(r, code)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

// writeServiceError maps the service errors to their status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrInvalidStatus, *service.ErrInvalidInput, *validator.ErrValidation:
		writeError(w, r, http.StatusBadRequest, err.Error())
	case *service.ErrResourceNotFound:
		writeError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrStoreUnavailable:
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}
