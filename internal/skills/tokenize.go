package skills

import (
	"regexp"
)

// reDelimiters splits free-text skill fields on the separators job boards
// use: commas, pipes, semicolons, slashes, newlines, tabs and bullets.
var reDelimiters = regexp.MustCompile("[,|;/\n\t]+|[•‣◦⁃∙·●]")

// Tokenize splits a free-text skill field into a normalized, deduplicated
// skill set. Empty fragments are dropped.
func Tokenize(text string) map[string]bool {
	out := make(map[string]bool)
	if text == "" {
		return out
	}
	for _, part := range reDelimiters.Split(text, -1) {
		if s := Normalize(part); s != "" {
			out[s] = true
		}
	}
	return out
}

// TokenizeOrdered splits a free-text skill field preserving appearance
// order, first occurrence wins. Skills listed first are treated as more
// important by the scorer (core skills).
func TokenizeOrdered(text string) []string {
	if text == "" {
		return nil
	}
	var ordered []string
	seen := make(map[string]bool)
	for _, part := range reDelimiters.Split(text, -1) {
		s := Normalize(part)
		if s == "" || seen[s] {
			continue
		}
		ordered = append(ordered, s)
		seen[s] = true
	}
	return ordered
}

// ScanVocabulary scans normalized free text for any known vocabulary term,
// matching whole words case-insensitively. Used as a fallback when a job's
// structured skill field yields no tokens.
func ScanVocabulary(text string, vocabulary []string) map[string]bool {
	out := make(map[string]bool)
	if text == "" || len(vocabulary) == 0 {
		return out
	}
	normalized := Normalize(text)
	for _, term := range vocabulary {
		t := Normalize(term)
		if t == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(t) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(normalized) {
			out[t] = true
		}
	}
	return out
}
