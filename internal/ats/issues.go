package ats

import "strings"

var requiredSections = []string{"summary", "experience", "education", "skills"}

// checkFormattingIssues inspects the stringified resume for length problems
// and absent section markers.
func checkFormattingIssues(stringified string) []Issue {
	issues := make([]Issue, 0, 2)

	if len(stringified) < 500 {
		issues = append(issues, Issue{
			Type:     "content_length",
			Message:  "Resume content appears too short",
			Severity: "warning",
		})
	} else if len(stringified) > 10000 {
		issues = append(issues, Issue{
			Type:     "content_length",
			Message:  "Resume content may be too long",
			Severity: "info",
		})
	}

	lower := strings.ToLower(stringified)
	var missing []string
	for _, section := range requiredSections {
		if !strings.Contains(lower, section) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, Issue{
			Type:     "missing_sections",
			Message:  "Missing sections: " + strings.Join(missing, ", "),
			Severity: "warning",
		})
	}

	return issues
}
