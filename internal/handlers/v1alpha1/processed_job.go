package v1alpha1

import (
	"net/http"

	"github.com/findajob/job-triage/internal/handlers/v1alpha1/mappers"
	"github.com/findajob/job-triage/internal/store/model"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (h *ServiceHandler) ListProcessedJobs(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("processed_job_handler").
		WithContext(r.Context()).
		Operation("list_processed_jobs").
		WithString("query", r.URL.RawQuery).
		Build()

	params, err := mappers.ListParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.processedJobSrv.ListProcessedJobs(r.Context(), params)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err)
		return
	}

	logger.Success().WithInt64("total", page.Total).Log()
	render.JSON(w, r, mappers.JobViewPageToApi(page))
}

func (h *ServiceHandler) GetProcessedJob(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("processed_job_handler").
		WithContext(r.Context()).
		Operation("get_processed_job").
		WithString("id", chi.URLParam(r, "id")).
		Build()

	id, err := mappers.IDFromPath(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.processedJobSrv.GetProcessedJob(r.Context(), id)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err)
		return
	}

	logger.Success().Log()
	render.JSON(w, r, mappers.JobViewToApi(*view))
}

func (h *ServiceHandler) ListJobStatuses(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, mappers.JobStatusesToApi(model.JobStatuses()))
}
