package model

import (
	"fmt"
	"sort"
	"strings"
)

// JobStatus is the application status an operator assigns to a job.
type JobStatus string

const (
	JobStatusNew                JobStatus = "new"
	JobStatusApplied            JobStatus = "applied"
	JobStatusUserRejected       JobStatus = "user_rejected"
	JobStatusFilterRejected     JobStatus = "filter_rejected"
	JobStatusInterviewScheduled JobStatus = "interview_scheduled"
	JobStatusInterviewCompleted JobStatus = "interview_completed"
	JobStatusOfferReceived      JobStatus = "offer_received"
	JobStatusOfferAccepted      JobStatus = "offer_accepted"
	JobStatusOfferRejected      JobStatus = "offer_rejected"
	JobStatusNotAnswered        JobStatus = "not_answered"
	JobStatusEmployerRejected   JobStatus = "employer_rejected"
)

// display order
var jobStatuses = []JobStatus{
	JobStatusNew,
	JobStatusApplied,
	JobStatusUserRejected,
	JobStatusFilterRejected,
	JobStatusInterviewScheduled,
	JobStatusInterviewCompleted,
	JobStatusOfferReceived,
	JobStatusOfferAccepted,
	JobStatusOfferRejected,
	JobStatusNotAnswered,
	JobStatusEmployerRejected,
}

// UnrankedValue is the sort rank of any status or seniority outside the rank tables.
const UnrankedValue = 999

var statusRanks = map[JobStatus]int{
	JobStatusNew:                1,
	JobStatusApplied:            2,
	JobStatusInterviewScheduled: 3,
	JobStatusInterviewCompleted: 4,
	JobStatusOfferReceived:      5,
	JobStatusOfferAccepted:      6,
	JobStatusNotAnswered:        7,
	JobStatusFilterRejected:     8,
	JobStatusUserRejected:       9,
	JobStatusEmployerRejected:   10,
	JobStatusOfferRejected:      11,
}

// keys are lower case
var seniorityRanks = map[string]int{
	"internship":       1,
	"entry level":      2,
	"associate":        3,
	"mid-senior level": 4,
	"director":         5,
	"executive":        6,
}

// JobStatuses returns every valid status in display order.
func JobStatuses() []JobStatus {
	return append([]JobStatus(nil), jobStatuses...)
}

// ParseJobStatus converts a raw string to a JobStatus, returning an error for
// values outside the enumeration. Matching is exact.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	if _, ok := statusRanks[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

func (s JobStatus) String() string {
	return string(s)
}

func StatusRank(s JobStatus) int {
	if r, ok := statusRanks[s]; ok {
		return r
	}
	return UnrankedValue
}

// SeniorityRank matches the seniority level case-insensitively.
func SeniorityRank(level string) int {
	if r, ok := seniorityRanks[strings.ToLower(level)]; ok {
		return r
	}
	return UnrankedValue
}

type Rank struct {
	Value string
	Rank  int
}

// StatusRanks returns the status rank table ordered by rank.
func StatusRanks() []Rank {
	ranks := make([]Rank, 0, len(statusRanks))
	for s, r := range statusRanks {
		ranks = append(ranks, Rank{Value: string(s), Rank: r})
	}
	return sortRanks(ranks)
}

// SeniorityRanks returns the seniority rank table, lower case keys, ordered by rank.
func SeniorityRanks() []Rank {
	ranks := make([]Rank, 0, len(seniorityRanks))
	for s, r := range seniorityRanks {
		ranks = append(ranks, Rank{Value: s, Rank: r})
	}
	return sortRanks(ranks)
}

func sortRanks(ranks []Rank) []Rank {
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Rank < ranks[j].Rank })
	return ranks
}
