package scoring

import "alfredoptarigan/ats-analyzer/internal/models"

// SkillsGap returns exactly three gaps in the order technical, soft, industry.
// An empty bucket reports 0% with nothing missing.
func SkillsGap(resumeKeywords, jobKeywords []string) []models.SkillGap {
	technical, soft, industry := Partition(jobKeywords)

	return []models.SkillGap{
		bucketGap(models.CategoryTechnical, technical, resumeKeywords),
		bucketGap(models.CategorySoft, soft, resumeKeywords),
		bucketGap(models.CategoryIndustry, industry, resumeKeywords),
	}
}

func bucketGap(category string, bucket, resumeKeywords []string) models.SkillGap {
	missing := []string{}
	for _, k := range bucket {
		if !hasRelated(k, resumeKeywords) {
			missing = append(missing, k)
		}
	}

	return models.SkillGap{
		Category:   category,
		Percentage: percent(len(bucket)-len(missing), len(bucket)),
		Missing:    missing,
	}
}
