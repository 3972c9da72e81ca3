package v1alpha1

import (
	"net/http"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/pkg/version"
	"github.com/go-chi/render"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	render.JSON(w, r, api.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}
