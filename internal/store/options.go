package store

import (
	"fmt"
	"strings"

	"github.com/findajob/job-triage/internal/store/model"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SortField string

const (
	SortByCreatedTime SortField = "created_at"
	SortByStatus      SortField = "status"
	SortBySeniority   SortField = "seniority"
	SortByTitle       SortField = "title"
	SortByEmployer    SortField = "employer"
)

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProcessedJobQueryFilter BaseQuerier

func NewProcessedJobQueryFilter() *ProcessedJobQueryFilter {
	return &ProcessedJobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ProcessedJobQueryFilter) ByID(id int64) *ProcessedJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("processed_jobs.id = ?", id)
	})
	return qf
}

func (qf *ProcessedJobQueryFilter) ByStatus(status model.JobStatus) *ProcessedJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("jobs.status = ?", string(status))
	})
	return qf
}

// BySeniority matches the seniority level exactly, ignoring case.
func (qf *ProcessedJobQueryFilter) BySeniority(level string) *ProcessedJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(jobs.seniority_level) = ?", strings.ToLower(level))
	})
	return qf
}

func (qf *ProcessedJobQueryFilter) ByEmployerLike(employer string) *ProcessedJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(`LOWER(jobs.employer) LIKE ? ESCAPE '\'`, containsPattern(employer))
	})
	return qf
}

func (qf *ProcessedJobQueryFilter) ByTitleLike(title string) *ProcessedJobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(`LOWER(jobs.job_title) LIKE ? ESCAPE '\'`, containsPattern(title))
	})
	return qf
}

type ProcessedJobQueryOptions BaseQuerier

func NewProcessedJobQueryOptions() *ProcessedJobQueryOptions {
	return &ProcessedJobQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// WithSort orders by field in direction, then by job creation time and processed job id in
// the same direction so the order is total and reverses exactly.
func (o *ProcessedJobQueryOptions) WithSort(field SortField, direction SortDirection) *ProcessedJobQueryOptions {
	dir := "DESC"
	if direction == SortAscending {
		dir = "ASC"
	}
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		if expr := sortExpression(field); expr != "" {
			tx = tx.Order(fmt.Sprintf("%s %s", expr, dir))
		}
		return tx.Order(fmt.Sprintf("jobs.created_at %s", dir)).Order(fmt.Sprintf("processed_jobs.id %s", dir))
	})
	return o
}

func (o *ProcessedJobQueryOptions) WithLimit(limit int) *ProcessedJobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

func (o *ProcessedJobQueryOptions) WithOffset(offset int) *ProcessedJobQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}

// sortExpression returns the primary ORDER BY expression for field. Created time has none,
// the tie-break columns already order by it.
func sortExpression(field SortField) string {
	switch field {
	case SortByStatus:
		return rankCase("jobs.status", model.StatusRanks())
	case SortBySeniority:
		return rankCase("LOWER(jobs.seniority_level)", model.SeniorityRanks())
	case SortByTitle:
		return "LOWER(COALESCE(jobs.job_title, ''))"
	case SortByEmployer:
		return "LOWER(COALESCE(jobs.employer, ''))"
	default:
		return ""
	}
}

func rankCase(column string, ranks []model.Rank) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CASE %s", column)
	for _, r := range ranks {
		fmt.Fprintf(&sb, " WHEN '%s' THEN %d", strings.ReplaceAll(r.Value, "'", "''"), r.Rank)
	}
	fmt.Fprintf(&sb, " ELSE %d END", model.UnrankedValue)
	return sb.String()
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
