// Package model defines shared data structures for the matching service.
package model

import (
	"fmt"
	"time"
)

// JobRecord mirrors the jobs catalog row relevant to scoring.
// It is owned by the discovery pipeline and read-only here.
type JobRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	RequiredSkills string    `json:"requiredSkills"` // free text, comma/bullet separated
	Remote         bool      `json:"remote"`
	SalaryMin      *int      `json:"salaryMin,omitempty"`
	SalaryMax      *int      `json:"salaryMax,omitempty"`
	URL            string    `json:"url,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserContext carries the non-skill user signals the scorer consults.
type UserContext struct {
	UserID   string
	Location string
}

// ─── Reasons ─────────────────────────────────────────────────────────────────

// ReasonKind tags a score explanation entry so clients can filter or style
// entries without parsing the rendered text.
type ReasonKind string

const (
	ReasonHeadline       ReasonKind = "headline"
	ReasonNoSkills       ReasonKind = "no_skills"
	ReasonMatchedSkills  ReasonKind = "matched_skills"
	ReasonCoreMatched    ReasonKind = "core_matched"
	ReasonCoreMissing    ReasonKind = "core_missing"
	ReasonRelatedSkills  ReasonKind = "related_skills"
	ReasonRemote         ReasonKind = "remote"
	ReasonLocation       ReasonKind = "location"
	ReasonExperience     ReasonKind = "experience"
	ReasonCoverage       ReasonKind = "coverage"
	ReasonMissingPenalty ReasonKind = "missing_penalty"
)

// Reason is a single tagged explanation entry. Detail is the kind-specific
// payload (skill list, level name, percentage…) — String renders the full
// human-readable sentence.
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Detail string     `json:"detail,omitempty"`
}

// String renders the reason for display.
func (r Reason) String() string {
	switch r.Kind {
	case ReasonHeadline:
		return r.Detail
	case ReasonNoSkills:
		return "No skills specified for this job"
	case ReasonMatchedSkills:
		return "Matching skills: " + r.Detail
	case ReasonCoreMatched:
		return "Core skills matched: " + r.Detail
	case ReasonCoreMissing:
		return "Missing core skills: " + r.Detail
	case ReasonRelatedSkills:
		return "Related skills: " + r.Detail
	case ReasonRemote:
		return "Remote position"
	case ReasonLocation:
		return "Location match"
	case ReasonExperience:
		return fmt.Sprintf("Experience level match (%s)", r.Detail)
	case ReasonCoverage:
		return r.Detail
	case ReasonMissingPenalty:
		return fmt.Sprintf("Many missing skills (-%s points)", r.Detail)
	}
	return r.Detail
}

// ─── Match results ───────────────────────────────────────────────────────────

// MatchResult is the outcome of scoring one (user skills, job) pair.
// Produced fresh per scoring run and never mutated afterwards.
type MatchResult struct {
	JobID   string   `json:"jobId"`
	Score   float64  `json:"score"` // 0–100, two decimals
	Reasons []Reason `json:"reasons"`
}

// ReasonStrings renders all reasons in order.
func (m MatchResult) ReasonStrings() []string {
	out := make([]string, 0, len(m.Reasons))
	for _, r := range m.Reasons {
		out = append(out, r.String())
	}
	return out
}

// PersistedMatch is one active (user, job, score) row. The full set for a
// user is replaced atomically on every scoring run.
type PersistedMatch struct {
	UserID string  `json:"userId"`
	JobID  string  `json:"jobId"`
	Score  float64 `json:"score"`
}

// MatchStats is a read-only aggregate view over a user's persisted matches.
type MatchStats struct {
	TotalMatches int            `json:"totalMatches"`
	AverageScore float64        `json:"averageScore"`
	TopScore     float64        `json:"topScore"`
	Distribution map[string]int `json:"distribution"` // buckets: <20, 20-40, 40-60, 60-80, 80+
}
