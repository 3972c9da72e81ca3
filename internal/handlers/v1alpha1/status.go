package v1alpha1

import (
	"fmt"
	"net/http"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/handlers/v1alpha1/mappers"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (h *ServiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("status_handler").
		WithContext(r.Context()).
		Operation("update_status").
		WithString("id", chi.URLParam(r, "id")).
		Build()

	id, err := mappers.IDFromPath(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var body api.StatusUpdate
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode body: %v", err))
		return
	}

	if err := h.validator.Struct(body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	change, err := h.statusSrv.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		logger.Error(err).Log()
		writeServiceError(w, r, err)
		return
	}

	logger.Success().WithString("status", string(change.Status)).WithInt64("job_id", change.JobID).Log()
	render.JSON(w, r, mappers.StatusChangeToApi(change))
}
