package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ProcessedJobKind = "processed-job"
	JobStatusKind    = "status"
)

var (
	pluralKinds = map[string]string{
		ProcessedJobKind: "processed-jobs",
		JobStatusKind:    "statuses",
	}
)

func parseAndValidateKindId(arg string) (string, *int64, error) {
	kind, idStr, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if len(idStr) == 0 {
		return kind, nil, nil
	}
	if kind == JobStatusKind {
		return "", nil, fmt.Errorf("%s does not take an id", plural(kind))
	}
	id, err := parseID(idStr)
	if err != nil {
		return "", nil, err
	}
	return kind, &id, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}

func defaultViewStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".job-triage", "view-state.yaml")
}
