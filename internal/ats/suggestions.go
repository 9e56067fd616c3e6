package ats

import "strings"

// buildSuggestions evaluates rules in a fixed order; that order is the
// output order. All applicable suggestions accumulate.
func buildSuggestions(scores SectionScores, missing []string) []Suggestion {
	suggestions := make([]Suggestion, 0, 7)

	if scores.ContactInfo < 75 {
		suggestions = append(suggestions, Suggestion{
			Type:     "contact_info",
			Priority: "high",
			Message:  "Add missing contact information",
		})
	}
	if scores.Summary < 50 {
		suggestions = append(suggestions, Suggestion{
			Type:     "summary",
			Priority: "high",
			Message:  "Add or improve your professional summary",
		})
	}
	if scores.Experience < 50 {
		suggestions = append(suggestions, Suggestion{
			Type:     "experience",
			Priority: "high",
			Message:  "Add more work experience with descriptions",
		})
	}
	if scores.Skills < 50 {
		suggestions = append(suggestions, Suggestion{
			Type:     "skills",
			Priority: "medium",
			Message:  "Add more skills with proficiency levels",
		})
	}
	if len(missing) > 0 {
		top := missing
		if len(top) > 5 {
			top = top[:5]
		}
		suggestions = append(suggestions, Suggestion{
			Type:     "keywords",
			Priority: "medium",
			Message:  "Consider adding these keywords: " + strings.Join(top, ", "),
		})
	}

	suggestions = append(suggestions,
		Suggestion{
			Type:     "content",
			Priority: "low",
			Message:  `Use strong action verbs like "achieved", "led", "developed"`,
		},
		Suggestion{
			Type:     "content",
			Priority: "medium",
			Message:  "Quantify achievements with numbers and percentages",
		},
	)

	return suggestions
}
