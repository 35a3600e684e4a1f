// Package scoring computes the 0–100 compatibility score between a user's
// skill set and a job posting, together with an ordered list of tagged,
// human-readable reasons.
//
// The score is a fixed-weight heuristic, not a learned model. The point
// budget is part of the service contract — clients and tests depend on the
// exact weights, so changing any constant is a breaking change:
//
//	base overlap        ≤ 60
//	core-skill bonus    ≤ +18   (first 5 required skills, appearance order)
//	core-skill penalty  ≤ −15
//	related skills      ≤ +6    (1.5 per pair)
//	location / remote   ≤ +4
//	experience level    +4 / −2
//	coverage tiers      ≤ +4
//	excess missing      ≤ −10   (1.5 per skill beyond 5)
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"jobmate/matching-service/internal/model"
	"jobmate/matching-service/internal/skills"
)

const (
	baseWeight         = 60.0
	coreBonusWeight    = 18.0
	corePenaltyWeight  = 15.0
	coreSkillCount     = 5
	relatedPerPair     = 1.5
	relatedCap         = 6.0
	locationBonus      = 4.0
	experienceBonus    = 4.0
	underQualedPenalty = 2.0
	missingGraceCount  = 5
	missingPerSkill    = 1.5
	missingCap         = 10.0
)

var (
	seniorKeywords = []string{"senior", "lead", "principal", "staff", "architect"}
	juniorKeywords = []string{"junior", "entry", "intern", "graduate", "trainee"}
	remoteKeywords = []string{"remote", "anywhere", "worldwide"}
)

// Engine scores (user skills, job) pairs. The vocabulary is the canonical
// skill list used only as a description-scan fallback when a job's
// structured skill field yields no tokens.
type Engine struct {
	vocabulary []string
}

// NewEngine returns an Engine with the given canonical skill vocabulary.
// A nil vocabulary disables the description-scan fallback.
func NewEngine(vocabulary []string) *Engine {
	return &Engine{vocabulary: vocabulary}
}

// Score computes the compatibility score for one job. Pure and safe to call
// concurrently; the result is never mutated after creation.
func (e *Engine) Score(userSkills map[string]bool, job model.JobRecord, user model.UserContext) model.MatchResult {
	jobSkills := skills.Tokenize(job.RequiredSkills)
	if len(jobSkills) == 0 {
		jobSkills = skills.ScanVocabulary(job.Description, e.vocabulary)
	}
	if len(jobSkills) == 0 {
		return model.MatchResult{
			JobID:   job.ID,
			Score:   0,
			Reasons: []model.Reason{{Kind: model.ReasonNoSkills}},
		}
	}

	matched := make(map[string]bool)
	missing := make(map[string]bool)
	for s := range jobSkills {
		if userSkills[s] {
			matched[s] = true
		} else {
			missing[s] = true
		}
	}

	var reasons []model.Reason

	// ── 1) Base: strict overlap ─────────────────────────────────────────
	baseRatio := float64(len(matched)) / float64(len(jobSkills))
	score := baseRatio * baseWeight
	if len(matched) > 0 {
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonMatchedSkills,
			Detail: joinSorted(matched, 5),
		})
	}

	// ── 2) Core skills coverage ─────────────────────────────────────────
	core := skills.TokenizeOrdered(job.RequiredSkills)
	if len(core) == 0 {
		core = sortedKeys(jobSkills) // vocabulary fallback has no ordering
	}
	if len(core) > coreSkillCount {
		core = core[:coreSkillCount]
	}
	if len(core) > 0 {
		coreMatched := make(map[string]bool)
		coreMissing := make(map[string]bool)
		for _, s := range core {
			if matched[s] {
				coreMatched[s] = true
			} else {
				coreMissing[s] = true
			}
		}

		score += float64(len(coreMatched)) / float64(len(core)) * coreBonusWeight

		if len(coreMissing) > 0 {
			score -= float64(len(coreMissing)) / float64(len(core)) * corePenaltyWeight
			reasons = append(reasons, model.Reason{
				Kind:   model.ReasonCoreMissing,
				Detail: joinSorted(coreMissing, 4),
			})
		}
		if len(coreMatched) > 0 {
			reasons = append(reasons, model.Reason{
				Kind:   model.ReasonCoreMatched,
				Detail: joinSorted(coreMatched, 4),
			})
		}
	}

	// ── 3) Related skills ───────────────────────────────────────────────
	if pairs := skills.RelatedPairs(userSkills, missing); len(pairs) > 0 {
		score += math.Min(relatedCap, float64(len(pairs))*relatedPerPair)
		if len(pairs) > 3 {
			pairs = pairs[:3]
		}
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonRelatedSkills,
			Detail: strings.Join(pairs, ", "),
		})
	}

	// ── 4) Location / remote ────────────────────────────────────────────
	jobLoc := strings.ToLower(job.Location)
	userLoc := strings.ToLower(strings.TrimSpace(user.Location))
	switch {
	case job.Remote || containsAny(jobLoc, remoteKeywords):
		score += locationBonus
		reasons = append(reasons, model.Reason{Kind: model.ReasonRemote})
	case userLoc != "" && jobLoc != "" && locationMatches(userLoc, jobLoc):
		score += locationBonus
		reasons = append(reasons, model.Reason{Kind: model.ReasonLocation})
	}

	// ── 5) Experience level ─────────────────────────────────────────────
	// Senior is checked before junior: a title carrying both keywords
	// classifies as senior.
	title := strings.ToLower(job.Title)
	descHead := strings.ToLower(head(job.Description, 200))
	skillCount := len(userSkills)
	switch {
	case containsAny(title, seniorKeywords) || containsAny(descHead, seniorKeywords):
		if skillCount >= 15 {
			score += experienceBonus
			reasons = append(reasons, model.Reason{Kind: model.ReasonExperience, Detail: "Senior"})
		} else {
			score -= underQualedPenalty
		}
	case containsAny(title, juniorKeywords) || containsAny(descHead, juniorKeywords):
		if skillCount <= 10 {
			score += experienceBonus
			reasons = append(reasons, model.Reason{Kind: model.ReasonExperience, Detail: "Entry/Junior"})
		}
	default:
		if skillCount >= 8 && skillCount <= 20 {
			score += experienceBonus
			reasons = append(reasons, model.Reason{Kind: model.ReasonExperience, Detail: "Mid-level"})
		}
	}

	// ── 6) Coverage bonus ───────────────────────────────────────────────
	percent := int(baseRatio * 100)
	switch {
	case baseRatio >= 0.85:
		score += 4.0
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonCoverage,
			Detail: fmt.Sprintf("Excellent skill coverage (%d%%)", percent),
		})
	case baseRatio >= 0.70:
		score += 2.0
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonCoverage,
			Detail: fmt.Sprintf("Good skill coverage (%d%%)", percent),
		})
	case baseRatio >= 0.50:
		score += 1.0
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonCoverage,
			Detail: fmt.Sprintf("Moderate skill coverage (%d%%)", percent),
		})
	}

	// ── 7) Excess missing penalty ───────────────────────────────────────
	if len(missing) > missingGraceCount {
		penalty := math.Min(missingCap, float64(len(missing)-missingGraceCount)*missingPerSkill)
		score -= penalty
		reasons = append(reasons, model.Reason{
			Kind:   model.ReasonMissingPenalty,
			Detail: fmt.Sprintf("%.1f", penalty),
		})
	}

	// ── 8) Clamp, round, headline ───────────────────────────────────────
	score = math.Max(0, math.Min(100, math.Round(score*100)/100))

	var headline string
	switch {
	case score >= 80:
		headline = "Excellent match"
	case score >= 60:
		headline = "Good match"
	case score >= 40:
		headline = "Moderate match"
	}
	if headline != "" {
		reasons = append([]model.Reason{{Kind: model.ReasonHeadline, Detail: headline}}, reasons...)
	}

	return model.MatchResult{JobID: job.ID, Score: score, Reasons: reasons}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// locationMatches reports a substring match in either direction, or any
// comma-separated token of the user's location appearing in the job location.
func locationMatches(userLoc, jobLoc string) bool {
	if strings.Contains(jobLoc, userLoc) || strings.Contains(userLoc, jobLoc) {
		return true
	}
	for _, city := range strings.Split(userLoc, ",") {
		city = strings.TrimSpace(city)
		if city != "" && strings.Contains(jobLoc, city) {
			return true
		}
	}
	return false
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinSorted(set map[string]bool, limit int) string {
	keys := sortedKeys(set)
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return strings.Join(keys, ", ")
}
