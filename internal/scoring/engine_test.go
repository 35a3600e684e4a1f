package scoring_test

import (
	"math"
	"strings"
	"testing"

	"jobmate/matching-service/internal/model"
	"jobmate/matching-service/internal/scoring"
)

func userSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func hasReason(reasons []model.Reason, kind model.ReasonKind) bool {
	for _, r := range reasons {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// ── Bounds and terminal cases ──────────────────────────────────────────────

func TestScore_AlwaysWithinBounds(t *testing.T) {
	engine := scoring.NewEngine(nil)
	jobs := []model.JobRecord{
		{ID: "j1", Title: "Senior Engineer", RequiredSkills: "Python, Go, Rust, C++, Java, Scala, Kotlin, Swift, Ruby, PHP, Perl, Haskell"},
		{ID: "j2", Title: "Junior Dev", RequiredSkills: "Python", Remote: true},
		{ID: "j3", Title: "Anything", RequiredSkills: ""},
		{ID: "j4", Title: "Full coverage", RequiredSkills: "Python, Django", Location: "Remote"},
	}
	users := []map[string]bool{
		{},
		userSet("python"),
		userSet("python", "django", "go", "rust", "c++", "java", "scala", "kotlin", "swift", "ruby", "php", "perl", "haskell", "elixir", "erlang", "clojure"),
	}
	for _, job := range jobs {
		for _, us := range users {
			got := engine.Score(us, job, model.UserContext{})
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("Score for job %s = %v, out of [0,100]", job.ID, got.Score)
			}
		}
	}
}

func TestScore_NoJobSkills(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Mystery Role", RequiredSkills: "", Description: ""}

	got := engine.Score(userSet("python"), job, model.UserContext{})
	if got.Score != 0 {
		t.Errorf("Score = %v, want 0", got.Score)
	}
	if len(got.Reasons) != 1 || got.Reasons[0].Kind != model.ReasonNoSkills {
		t.Fatalf("Reasons = %v, want single no-skills reason", got.Reasons)
	}
	if s := got.Reasons[0].String(); s != "No skills specified for this job" {
		t.Errorf("rendered reason = %q, want %q", s, "No skills specified for this job")
	}
}

// The description-scan fallback kicks in only when the structured field is
// empty and a vocabulary is available.
func TestScore_VocabularyFallback(t *testing.T) {
	engine := scoring.NewEngine([]string{"python", "docker"})
	job := model.JobRecord{
		ID:          "j1",
		Title:       "Backend Dev",
		Description: "You will write python services and deploy with docker.",
	}

	got := engine.Score(userSet("python", "docker"), job, model.UserContext{})
	if got.Score == 0 {
		t.Fatal("fallback scan should have produced job skills and a non-zero score")
	}
	if !hasReason(got.Reasons, model.ReasonMatchedSkills) {
		t.Errorf("Reasons = %v, want matched-skills entry", got.Reasons)
	}
}

// ── Reference scenario ─────────────────────────────────────────────────────
//
// user {python, django, postgresql} vs "Python, Django, PostgreSQL, Docker, AWS":
// base 3/5·60 = 36, core bonus 3/5·18 = 10.8, core penalty 2/5·15 = 6.0,
// no related pairs, no location, skill count 3 outside every experience
// bracket, coverage 0.6 → +1. Total 41.8.
func TestScore_ReferenceScenario(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{
		ID:             "j1",
		Title:          "Backend Developer",
		RequiredSkills: "Python, Django, PostgreSQL, Docker, AWS",
	}

	got := engine.Score(userSet("python", "django", "postgresql"), job, model.UserContext{})

	if math.Abs(got.Score-41.8) > 1e-9 {
		t.Errorf("Score = %v, want 41.8", got.Score)
	}
	if got.Reasons[0].Kind != model.ReasonHeadline || got.Reasons[0].Detail != "Moderate match" {
		t.Errorf("headline = %+v, want Moderate match", got.Reasons[0])
	}
	for _, r := range got.Reasons {
		if r.Kind == model.ReasonMatchedSkills && r.Detail != "django, postgresql, python" {
			t.Errorf("matched detail = %q, want alphabetical list", r.Detail)
		}
		if r.Kind == model.ReasonRelatedSkills {
			t.Error("no related-skill bonus expected in this scenario")
		}
	}
}

// Full coverage of job skills and core skills keeps the score at or above
// the 78-point floor (60 base + 18 core before secondary adjustments).
func TestScore_FullCoverageFloor(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{
		ID:             "j1",
		Title:          "Platform Engineer",
		RequiredSkills: "Go, Docker, Kubernetes, Terraform",
	}

	got := engine.Score(userSet("go", "docker", "kubernetes", "terraform"), job, model.UserContext{})
	if got.Score < 78 {
		t.Errorf("Score = %v, want >= 78 for full core coverage", got.Score)
	}
	if got.Reasons[0].Kind != model.ReasonHeadline {
		t.Errorf("first reason = %+v, want headline", got.Reasons[0])
	}
}

// ── Related skills ─────────────────────────────────────────────────────────

func TestScore_RelatedSkillBonus(t *testing.T) {
	engine := scoring.NewEngine(nil)

	// python implies the two missing skills: 2 pairs · 1.5 = +3.
	withRelated := engine.Score(userSet("python"),
		model.JobRecord{ID: "j1", Title: "Web Developer", RequiredSkills: "Python, Django, Flask"},
		model.UserContext{})

	// Structurally identical job whose skills carry no graph edges.
	without := engine.Score(userSet("perl"),
		model.JobRecord{ID: "j1", Title: "Web Developer", RequiredSkills: "Perl, Django, Flask"},
		model.UserContext{})

	if !hasReason(withRelated.Reasons, model.ReasonRelatedSkills) {
		t.Errorf("Reasons = %v, want related-skills entry", withRelated.Reasons)
	}
	if hasReason(without.Reasons, model.ReasonRelatedSkills) {
		t.Errorf("Reasons = %v, want no related-skills entry", without.Reasons)
	}
	diff := withRelated.Score - without.Score
	if diff <= 0 || diff > 6 {
		t.Errorf("related bonus = %v, want in (0, 6]", diff)
	}
}

// ── Location and remote ────────────────────────────────────────────────────

func TestScore_RemoteBonus(t *testing.T) {
	engine := scoring.NewEngine(nil)
	base := model.JobRecord{ID: "j1", Title: "Dev", RequiredSkills: "Python"}

	onsite := engine.Score(userSet("python"), base, model.UserContext{})

	remote := base
	remote.Remote = true
	gotFlag := engine.Score(userSet("python"), remote, model.UserContext{})
	if gotFlag.Score != onsite.Score+4 {
		t.Errorf("remote flag bonus: %v vs %v, want +4", gotFlag.Score, onsite.Score)
	}

	keyword := base
	keyword.Location = "Anywhere (worldwide)"
	gotKeyword := engine.Score(userSet("python"), keyword, model.UserContext{})
	if gotKeyword.Score != onsite.Score+4 {
		t.Errorf("remote keyword bonus: %v vs %v, want +4", gotKeyword.Score, onsite.Score)
	}
}

func TestScore_LocationMatch(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Dev", RequiredSkills: "Python", Location: "Paris, France"}

	elsewhere := engine.Score(userSet("python"), job, model.UserContext{Location: "Berlin"})
	matching := engine.Score(userSet("python"), job, model.UserContext{Location: "Paris"})
	if matching.Score != elsewhere.Score+4 {
		t.Errorf("location bonus: %v vs %v, want +4", matching.Score, elsewhere.Score)
	}

	// Any comma-separated token of the user's location counts.
	tokenMatch := engine.Score(userSet("python"), job, model.UserContext{Location: "Lyon, Paris"})
	if tokenMatch.Score != elsewhere.Score+4 {
		t.Errorf("location token bonus: %v vs %v, want +4", tokenMatch.Score, elsewhere.Score)
	}
}

// ── Experience level ───────────────────────────────────────────────────────

func TestScore_SeniorBonusAndPenalty(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Senior Go Engineer", RequiredSkills: "Go"}

	many := []string{
		"go", "docker", "kubernetes", "terraform", "ansible", "python",
		"rust", "java", "scala", "redis", "postgresql", "mysql",
		"mongodb", "kafka", "grafana", "linux",
	}

	qualified := engine.Score(userSet(many...), job, model.UserContext{})
	if !hasReason(qualified.Reasons, model.ReasonExperience) {
		t.Errorf("Reasons = %v, want senior experience entry", qualified.Reasons)
	}

	under := engine.Score(userSet("go"), job, model.UserContext{})
	if hasReason(under.Reasons, model.ReasonExperience) {
		t.Errorf("under-qualified senior match must not add an experience reason: %v", under.Reasons)
	}
}

func TestScore_JuniorBonus(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Junior Developer", RequiredSkills: "Python"}

	got := engine.Score(userSet("python"), job, model.UserContext{})
	found := false
	for _, r := range got.Reasons {
		if r.Kind == model.ReasonExperience && r.Detail == "Entry/Junior" {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasons = %v, want Entry/Junior experience entry", got.Reasons)
	}
}

// A title carrying both "senior" and "junior" classifies as senior —
// senior is checked first.
func TestScore_SeniorCheckedBeforeJunior(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Senior Developer (ex-junior welcome)", RequiredSkills: "Python"}

	// 1 skill: a junior classification would award +4, a senior one −2.
	ambiguous := engine.Score(userSet("python"), job, model.UserContext{})
	junior := engine.Score(userSet("python"),
		model.JobRecord{ID: "j1", Title: "Junior Developer", RequiredSkills: "Python"},
		model.UserContext{})

	if ambiguous.Score >= junior.Score {
		t.Errorf("ambiguous title scored %v, junior %v — senior precedence not applied", ambiguous.Score, junior.Score)
	}
}

// ── Coverage tiers and missing penalty ─────────────────────────────────────

func TestScore_CoverageTierReasons(t *testing.T) {
	engine := scoring.NewEngine(nil)
	job := model.JobRecord{ID: "j1", Title: "Dev", RequiredSkills: "Python, Django"}

	full := engine.Score(userSet("python", "django"), job, model.UserContext{})
	var detail string
	for _, r := range full.Reasons {
		if r.Kind == model.ReasonCoverage {
			detail = r.Detail
		}
	}
	if !strings.HasPrefix(detail, "Excellent skill coverage") {
		t.Errorf("coverage detail = %q, want excellent tier", detail)
	}

	half := engine.Score(userSet("python"), job, model.UserContext{})
	detail = ""
	for _, r := range half.Reasons {
		if r.Kind == model.ReasonCoverage {
			detail = r.Detail
		}
	}
	if !strings.HasPrefix(detail, "Moderate skill coverage") {
		t.Errorf("coverage detail = %q, want moderate tier", detail)
	}
}

func TestScore_ExcessMissingPenalty(t *testing.T) {
	engine := scoring.NewEngine(nil)
	// 8 required, 1 matched → 7 missing → penalty (7−5)·1.5 = 3.
	job := model.JobRecord{
		ID:             "j1",
		Title:          "Polyglot",
		RequiredSkills: "Python, Go, Rust, Java, Scala, Kotlin, Swift, Ruby",
	}

	got := engine.Score(userSet("python"), job, model.UserContext{})
	found := false
	for _, r := range got.Reasons {
		if r.Kind == model.ReasonMissingPenalty {
			found = true
			if r.Detail != "3.0" {
				t.Errorf("penalty detail = %q, want 3.0", r.Detail)
			}
		}
	}
	if !found {
		t.Errorf("Reasons = %v, want missing-penalty entry", got.Reasons)
	}
}
