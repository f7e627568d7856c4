package scoring

import "strings"

// MatchKeywords compares resume keywords against job keywords.
//
// found holds the resume keywords contained in at least one job keyword.
// missing holds the job keywords not contained in any resume keyword.
// The two lists are filtered from opposite sides and are not complements.
func MatchKeywords(resumeKeywords, jobKeywords []string) (found, missing []string) {
	found, missing = []string{}, []string{}

	for _, rk := range resumeKeywords {
		needle := strings.ToLower(rk)
		for _, jk := range jobKeywords {
			if strings.Contains(strings.ToLower(jk), needle) {
				found = append(found, rk)
				break
			}
		}
	}

	for _, jk := range jobKeywords {
		needle := strings.ToLower(jk)
		matched := false
		for _, rk := range resumeKeywords {
			if strings.Contains(strings.ToLower(rk), needle) {
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, jk)
		}
	}

	return found, missing
}

// hasRelated reports whether any candidate is Related to keyword.
func hasRelated(keyword string, candidates []string) bool {
	for _, c := range candidates {
		if Related(keyword, c) {
			return true
		}
	}
	return false
}
