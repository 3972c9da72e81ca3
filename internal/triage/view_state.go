package triage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/findajob/job-triage/internal/client"
	"sigs.k8s.io/yaml"
)

type Filter struct {
	Status    string `json:"status,omitempty"`
	Seniority string `json:"seniority,omitempty"`
	Employer  string `json:"employer,omitempty"`
	Title     string `json:"title,omitempty"`
}

// ViewState is everything needed to rebuild the triage view: the query and the cursor.
// Page is 1-based and equals the cursor position plus one, since pages hold a single item.
type ViewState struct {
	Filter Filter `json:"filter"`
	SortBy string `json:"sortBy,omitempty"`
	Order  string `json:"order,omitempty"`
	Page   int    `json:"page"`
}

func (v ViewState) query(cursor int) client.ListQuery {
	return client.ListQuery{
		Status:    v.Filter.Status,
		Seniority: v.Filter.Seniority,
		Employer:  v.Filter.Employer,
		Title:     v.Filter.Title,
		SortBy:    v.SortBy,
		Order:     v.Order,
		Page:      cursor + 1,
		PageSize:  1,
	}
}

// ViewStore persists the view state between sessions. Load returns nil when nothing was saved.
type ViewStore interface {
	Load(ctx context.Context) (*ViewState, error)
	Save(ctx context.Context, state ViewState) error
}

// FileViewStore keeps the view state in a yaml file.
type FileViewStore struct {
	path string
}

func NewFileViewStore(path string) *FileViewStore {
	return &FileViewStore{path: path}
}

func (f *FileViewStore) Load(_ context.Context) (*ViewState, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading view state: %w", err)
	}

	var state ViewState
	if err := yaml.Unmarshal(contents, &state); err != nil {
		return nil, fmt.Errorf("decoding view state: %w", err)
	}
	return &state, nil
}

func (f *FileViewStore) Save(_ context.Context, state ViewState) error {
	contents, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	if err := os.WriteFile(f.path, contents, 0600); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}
