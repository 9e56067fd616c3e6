package ats

import (
	"regexp"
	"strings"
)

var achievementPattern = regexp.MustCompile(`\d+%|\$\d+|\d+\s*(?:years?|months?)`)

// scoreContact awards 25 points per present contact field. City and country
// share one slot.
func scoreContact(s Snapshot) int {
	score := 0
	if s.Email != "" {
		score += 25
	}
	if s.Phone != "" {
		score += 25
	}
	if s.City != "" || s.Country != "" {
		score += 25
	}
	if s.FullName != "" {
		score += 25
	}
	return score
}

// scoreSummary rates the professional summary on length, verbs, and
// punctuation. The inclusive length range is checked before the long-summary
// branch, so a 500-character summary earns the full length bonus.
func scoreSummary(s Snapshot) int {
	summary := s.Summary
	if summary == "" {
		return 0
	}

	score := 30

	if n := len(summary); n >= 100 && n <= 500 {
		score += 25
	} else if n > 500 {
		score += 15
	}

	lower := strings.ToLower(summary)
	for _, verb := range summaryVerbs {
		if strings.Contains(lower, verb) {
			score += 20
			break
		}
	}

	if !strings.HasSuffix(summary, ".") {
		score -= 10
	}

	return clampScore(score)
}

func scoreExperience(s Snapshot) int {
	if len(s.Experiences) == 0 {
		return 0
	}

	score := 30

	if len(s.Experiences) >= 2 {
		score += 20
	} else {
		score += 10
	}

	withDescription := 0
	for _, exp := range s.Experiences {
		if exp.Description != "" {
			withDescription++
		}
	}
	if withDescription >= len(s.Experiences)/2 {
		score += 25
	}

	for _, exp := range s.Experiences {
		if achievementPattern.MatchString(exp.Description) {
			score += 25
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func scoreEducation(s Snapshot) int {
	if len(s.Education) == 0 {
		return 0
	}

	score := 40

	for _, edu := range s.Education {
		if edu.Degree != "" {
			score += 30
			break
		}
	}
	for _, edu := range s.Education {
		if edu.Institution != "" {
			score += 20
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func scoreSkills(s Snapshot) int {
	if len(s.Skills) == 0 {
		return 0
	}

	score := 30

	if len(s.Skills) >= 10 {
		score += 25
	} else if len(s.Skills) >= 5 {
		score += 15
	}

	for _, sk := range s.Skills {
		if sk.Category != "" {
			score += 20
			break
		}
	}
	for _, sk := range s.Skills {
		if sk.Level != "" {
			score += 25
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// scoreFormatting inspects the stringified resume rather than real document
// structure. A weak proxy, kept as-is because changing it changes scores.
func scoreFormatting(stringified string) int {
	score := 100

	if strings.Contains(strings.ToLower(stringified), "table") {
		score -= 30
	}

	for _, header := range []string{"Experience", "Education", "Skills", "Summary"} {
		if strings.Contains(stringified, header) {
			score += 10
			break
		}
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
