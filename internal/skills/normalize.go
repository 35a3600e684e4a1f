// Package skills implements skill-token normalization, tokenization of
// free-text skill fields, and the static related-skill graph.
//
// Everything in this package is pure: no I/O, no mutable package state.
// The alias and relation tables are fixed at compile time.
package skills

import (
	"regexp"
	"strings"
)

var (
	// reBullets matches the bullet glyphs job boards commonly paste into
	// required-skills fields (•, ‣, ◦, ⁃, ∙, ·, ●).
	reBullets = regexp.MustCompile("[•‣◦⁃∙·●]")

	// reDisallowed strips everything outside the skill alphabet.
	// + # . / and - survive so tokens like "c++", "c#", "node.js" and
	// "ci/cd" stay intact.
	reDisallowed = regexp.MustCompile(`[^a-z0-9+#./ -]+`)

	reSpaces = regexp.MustCompile(`\s+`)
)

// aliases maps common spelling variants to their canonical skill name.
// Applied as an exact-match post-step after normalization.
var aliases = map[string]string{
	"react.js":   "react",
	"reactjs":    "react",
	"nodejs":     "node.js",
	"node js":    "node.js",
	"js":         "javascript",
	"ts":         "typescript",
	"postgres":   "postgresql",
	"mongo":      "mongodb",
	"k8s":        "kubernetes",
	"ci cd":      "ci/cd",
	"dotnet":     ".net",
	"c sharp":    "c#",
	"golang":     "go",
	"aws":        "amazon web services",
	"gcp":        "google cloud platform",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"angular.js": "angular",
	"angularjs":  "angular",
}

// Normalize canonicalizes a raw skill token: lowercase, bullet and `&`
// replacement, charset filtering, whitespace collapse, then alias
// resolution. Returns "" for input that normalizes to nothing — callers
// must drop empty results. Idempotent and side-effect free.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = reBullets.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = reDisallowed.ReplaceAllString(s, " ")
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))

	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeSet normalizes every entry and returns the deduplicated set,
// dropping entries that normalize to nothing.
func NormalizeSet(raw []string) map[string]bool {
	out := make(map[string]bool, len(raw))
	for _, r := range raw {
		if s := Normalize(r); s != "" {
			out[s] = true
		}
	}
	return out
}
