package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type recommendationRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

type formattingRecord struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// decodeKeywords accepts {"keywords": [...]} or a bare array of strings.
// Blank entries are dropped; duplicates are kept as the model sent them.
func decodeKeywords(raw string) ([]string, error) {
	var keywords []string
	if err := decodeList(raw, "keywords", &keywords); err != nil {
		return nil, err
	}

	out := []string{}
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out, nil
}

// decodeRecommendations drops records without a title or with a priority
// outside High/Medium/Low.
func decodeRecommendations(raw string) ([]models.Recommendation, error) {
	var records []recommendationRecord
	if err := decodeList(raw, "recommendations", &records); err != nil {
		return nil, err
	}

	out := []models.Recommendation{}
	for _, r := range records {
		title := strings.TrimSpace(r.Title)
		priority, ok := normalizePriority(r.Priority)
		if title == "" || !ok {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(r.Category))
		if category == "" {
			category = "general"
		}

		out = append(out, models.Recommendation{
			Title:       title,
			Description: strings.TrimSpace(r.Description),
			Priority:    priority,
			Category:    category,
		})
	}
	return out, nil
}

// decodeFormattingChecks drops records without a name or with an unknown status.
func decodeFormattingChecks(raw string) ([]models.FormattingCheck, error) {
	var records []formattingRecord
	if err := decodeList(raw, "checks", &records); err != nil {
		return nil, err
	}

	out := []models.FormattingCheck{}
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		status, ok := normalizeStatus(r.Status)
		if name == "" || !ok {
			continue
		}

		out = append(out, models.FormattingCheck{
			Name:    name,
			Status:  status,
			Message: strings.TrimSpace(r.Message),
		})
	}
	return out, nil
}

// decodeList unmarshals either {"<field>": [...]} or a bare JSON array into target.
func decodeList(raw, field string, target any) error {
	payload := []byte(extractJSON(raw))

	if bytes.HasPrefix(bytes.TrimSpace(payload), []byte("[")) {
		if err := json.Unmarshal(payload, target); err != nil {
			return fmt.Errorf("failed to decode %s array: %w", field, err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", field, err)
	}

	list, ok := envelope[field]
	if !ok || bytes.Equal(bytes.TrimSpace(list), []byte("null")) {
		return fmt.Errorf("response has no %q field", field)
	}
	if err := json.Unmarshal(list, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", field, err)
	}
	return nil
}

// extractJSON strips markdown fences and surrounding prose from a model reply.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Whichever structure opens first is the outer one
	if startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		return text[startArr : endArr+1]
	}
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}

func normalizePriority(p string) (models.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return models.PriorityHigh, true
	case "medium":
		return models.PriorityMedium, true
	case "low":
		return models.PriorityLow, true
	}
	return "", false
}

func normalizeStatus(s string) (models.CheckStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passed", "pass":
		return models.CheckPassed, true
	case "warning", "warn":
		return models.CheckWarning, true
	case "failed", "fail":
		return models.CheckFailed, true
	}
	return "", false
}

// mergeKeywords concatenates keyword lists, trimming blanks and dropping
// case-insensitive duplicates. The first spelling wins.
func mergeKeywords(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, k := range list {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			key := strings.ToLower(k)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
