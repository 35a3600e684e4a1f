package skills

import "sort"

// relations is the hand-curated adjacency graph: a skill maps to the skills
// it commonly implies. Closed table — no dynamic learning. The resolver
// consults it in both directions.
var relations = map[string][]string{
	"python":           {"django", "flask", "fastapi", "pandas", "numpy", "scikit-learn", "pytorch"},
	"javascript":       {"react", "angular", "vue", "node.js", "express", "typescript", "next.js", "jquery"},
	"typescript":       {"javascript", "react", "angular", "node.js"},
	"java":             {"spring", "spring boot", "hibernate", "maven", "gradle"},
	"c#":               {".net", "asp.net", "entity framework", "xamarin"},
	".net":             {"c#", "asp.net", "entity framework"},
	"php":              {"laravel", "symfony", "wordpress", "drupal"},
	"ruby":             {"rails", "ruby on rails", "sinatra"},
	"go":               {"golang", "gin", "echo"},
	"rust":             {"actix", "rocket"},
	"sql":              {"postgresql", "mysql", "sqlite", "oracle", "sql server"},
	"postgresql":       {"sql", "postgres"},
	"mysql":            {"sql", "mariadb"},
	"nosql":            {"mongodb", "redis", "cassandra", "dynamodb", "couchdb"},
	"mongodb":          {"nosql", "mongoose"},
	"redis":            {"nosql", "caching"},
	"devops":           {"docker", "kubernetes", "jenkins", "ci/cd", "terraform", "ansible"},
	"docker":           {"kubernetes", "containerization", "devops"},
	"kubernetes":       {"docker", "k8s", "helm", "devops"},
	"ci/cd":            {"jenkins", "github actions", "gitlab ci", "circleci", "devops"},
	"cloud":            {"aws", "azure", "gcp", "cloud computing"},
	"aws":              {"cloud", "ec2", "s3", "lambda", "dynamodb"},
	"azure":            {"cloud", "azure devops", "cosmos db"},
	"gcp":              {"cloud", "google cloud", "bigquery"},
	"frontend":         {"html", "css", "javascript", "react", "angular", "vue", "ui/ux"},
	"backend":          {"api", "rest", "graphql", "microservices", "server", "database"},
	"fullstack":        {"frontend", "backend", "database", "api"},
	"mobile":           {"ios", "android", "react native", "flutter", "swift", "kotlin"},
	"ios":              {"swift", "objective-c", "xcode", "mobile"},
	"android":          {"kotlin", "java", "android studio", "mobile"},
	"react native":     {"react", "mobile", "javascript"},
	"flutter":          {"dart", "mobile"},
	"machine learning": {"python", "tensorflow", "pytorch", "scikit-learn", "ai"},
	"data science":     {"python", "r", "pandas", "numpy", "statistics", "machine learning"},
	"ai":               {"machine learning", "deep learning", "neural networks", "python"},
}

// Implied returns the subset of candidates the graph links to skill, in
// either direction: skill → candidate, or candidate → skill.
func Implied(skill string, candidates map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, rel := range relations[skill] {
		if candidates[rel] {
			out[rel] = true
		}
	}
	for c := range candidates {
		for _, rel := range relations[c] {
			if rel == skill {
				out[c] = true
				break
			}
		}
	}
	return out
}

// RelatedPairs returns direction-annotated "user→required" / "user←required"
// pair strings for every user skill the graph links to a required skill the
// user is missing. Sorted for deterministic output. The count feeds a
// bounded bonus, never a primary-match substitute.
func RelatedPairs(userSkills, required map[string]bool) []string {
	pairs := make(map[string]bool)

	for us := range userSkills {
		for _, rel := range relations[us] {
			if required[rel] {
				pairs[us+"→"+rel] = true
			}
		}
		for req := range required {
			for _, rel := range relations[req] {
				if rel == us {
					pairs[us+"←"+req] = true
					break
				}
			}
		}
	}

	out := make([]string, 0, len(pairs))
	for p := range pairs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
