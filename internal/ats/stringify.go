package ats

import "strings"

// Stringify renders the snapshot as a deterministic plain-text dump used by
// the formatting heuristics. Field keys are lowercase and emitted only when
// the field or section is populated, so the missing-section check stays
// meaningful.
func (s Snapshot) Stringify() string {
	var b strings.Builder

	writeField := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	writeField("full_name", s.FullName)
	writeField("email", s.Email)
	writeField("phone", s.Phone)
	writeField("city", s.City)
	writeField("country", s.Country)
	writeField("summary", s.Summary)

	if len(s.Experiences) > 0 {
		b.WriteString("experience:\n")
		for _, exp := range s.Experiences {
			b.WriteString("- ")
			b.WriteString(strings.TrimSpace(exp.JobTitle + " at " + exp.Company))
			if exp.Description != "" {
				b.WriteString(": ")
				b.WriteString(exp.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Education) > 0 {
		b.WriteString("education:\n")
		for _, edu := range s.Education {
			b.WriteString("- ")
			b.WriteString(strings.TrimSpace(edu.Degree + ", " + edu.Institution))
			if edu.Description != "" {
				b.WriteString(": ")
				b.WriteString(edu.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Skills) > 0 {
		b.WriteString("skills:\n")
		for _, sk := range s.Skills {
			b.WriteString("- ")
			b.WriteString(sk.Name)
			if sk.Category != "" {
				b.WriteString(" (" + sk.Category + ")")
			}
			if sk.Level != "" {
				b.WriteString(" [" + sk.Level + "]")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
