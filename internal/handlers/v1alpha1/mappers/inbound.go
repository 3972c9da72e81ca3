package mappers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/findajob/job-triage/internal/service"
)

// ListParamsFromQuery reads the list query parameters. Absent page and pageSize take the
// service defaults, the service validates the ranges.
func ListParamsFromQuery(q url.Values) (service.ListParams, error) {
	page, err := intParam(q, "page", service.DefaultPage)
	if err != nil {
		return service.ListParams{}, err
	}
	pageSize, err := intParam(q, "pageSize", service.DefaultPageSize)
	if err != nil {
		return service.ListParams{}, err
	}

	return service.ListParams{
		Filter: service.Filter{
			Status:    q.Get("status"),
			Seniority: q.Get("seniority"),
			Employer:  q.Get("employer"),
			Title:     q.Get("title"),
		},
		SortBy:   q.Get("sortBy"),
		Order:    q.Get("order"),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw, ok := q[name]
	if !ok || len(raw) == 0 || raw[0] == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw[0])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw[0])
	}
	return v, nil
}

func IDFromPath(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
