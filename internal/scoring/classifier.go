package scoring

import "strings"

var technicalTerms = []string{
	"javascript", "python", "java", "react", "node", "sql", "aws", "docker",
	"kubernetes", "typescript", "angular", "vue", "mongodb", "postgresql",
	"redis", "graphql", "rest", "api", "microservices", "devops", "ci/cd",
	"git", "linux", "agile", "scrum", "testing", "jest", "cypress",
}

var softTerms = []string{
	"leadership", "communication", "teamwork", "problem-solving", "analytical",
	"creative", "adaptable", "organized", "detail-oriented", "collaborative",
	"management", "project management", "time management",
}

// Related reports whether either keyword contains the other, ignoring case.
// Short tokens over-match ("r" is related to "react"); every bidirectional
// comparison in the scoring pipeline goes through here so the rule can be
// replaced in one place.
func Related(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func IsTechnical(keyword string) bool {
	return inLexicon(keyword, technicalTerms)
}

func IsSoft(keyword string) bool {
	return inLexicon(keyword, softTerms)
}

func inLexicon(keyword string, lexicon []string) bool {
	for _, term := range lexicon {
		if Related(keyword, term) {
			return true
		}
	}
	return false
}

// Partition splits keywords into technical, soft and industry buckets.
// Technical wins over soft when a keyword matches both lexicons.
func Partition(keywords []string) (technical, soft, industry []string) {
	technical, soft, industry = []string{}, []string{}, []string{}
	for _, k := range keywords {
		switch {
		case IsTechnical(k):
			technical = append(technical, k)
		case IsSoft(k):
			soft = append(soft, k)
		default:
			industry = append(industry, k)
		}
	}
	return technical, soft, industry
}
