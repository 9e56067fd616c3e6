package ats

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// matchKeywords intersects resume and job-description vocabularies against
// the reference dictionary. Output slices are sorted lexicographically so
// results are reproducible.
func matchKeywords(s Snapshot, jobDescription string) KeywordMatch {
	resumeWords := tokenize(resumeText(s))

	jobWords := make(map[string]struct{})
	if jobDescription != "" {
		jobWords = tokenize(jobDescription)
	}

	matched := make([]string, 0)
	missing := make([]string, 0)
	relevant := 0
	for word := range jobWords {
		if _, ok := referenceVocabulary[word]; !ok {
			continue
		}
		relevant++
		if _, ok := resumeWords[word]; ok {
			matched = append(matched, word)
		} else {
			missing = append(missing, word)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	rate := 0.0
	if relevant > 0 {
		rate = float64(len(matched)) / float64(relevant) * 100
	}

	return KeywordMatch{
		Matched:      matched,
		Missing:      missing,
		MatchRate:    rate,
		TotalMatched: len(matched),
		TotalMissing: len(missing),
	}
}

// resumeText concatenates the fields the matcher looks at: summary,
// experience and education descriptions, and skill names.
func resumeText(s Snapshot) string {
	parts := []string{s.Summary}
	for _, exp := range s.Experiences {
		parts = append(parts, exp.Description)
	}
	for _, edu := range s.Education {
		parts = append(parts, edu.Description)
	}
	for _, sk := range s.Skills {
		parts = append(parts, sk.Name)
	}
	return strings.Join(parts, " ")
}

// ExtractKeywords reports which dictionary terms appear in the resume and
// in the job description, independently of scoring.
func ExtractKeywords(s Snapshot, jobDescription string) KeywordExtraction {
	resumeWords := tokenize(resumeText(s))
	jobWords := tokenize(jobDescription)

	out := KeywordExtraction{
		ResumeKeywords: make([]string, 0),
		JobKeywords:    make([]string, 0),
		Matched:        make([]string, 0),
		Missing:        make([]string, 0),
	}
	for word := range referenceVocabulary {
		_, inResume := resumeWords[word]
		_, inJob := jobWords[word]
		if inResume {
			out.ResumeKeywords = append(out.ResumeKeywords, word)
		}
		if inJob {
			out.JobKeywords = append(out.JobKeywords, word)
		}
		if inJob && inResume {
			out.Matched = append(out.Matched, word)
		}
		if inJob && !inResume {
			out.Missing = append(out.Missing, word)
		}
	}
	sort.Strings(out.ResumeKeywords)
	sort.Strings(out.JobKeywords)
	sort.Strings(out.Matched)
	sort.Strings(out.Missing)
	return out
}

func tokenize(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		words[w] = struct{}{}
	}
	return words
}
