// Package ats implements the rule-based resume compatibility scorer: six
// independent section scores, dictionary keyword matching against an
// optional job description, and deterministic improvement suggestions.
package ats

// Analyze scores the snapshot and assembles the full report. Pure function;
// safe for concurrent use.
func Analyze(s Snapshot, jobDescription string) Result {
	stringified := s.Stringify()

	scores := SectionScores{
		ContactInfo: scoreContact(s),
		Summary:     scoreSummary(s),
		Experience:  scoreExperience(s),
		Education:   scoreEducation(s),
		Skills:      scoreSkills(s),
		Formatting:  scoreFormatting(stringified),
	}

	keywords := matchKeywords(s, jobDescription)

	return Result{
		OverallScore:     overallScore(scores),
		Scores:           scores,
		Keywords:         keywords.Matched,
		MissingKeywords:  keywords.Missing,
		Suggestions:      buildSuggestions(scores, keywords.Missing),
		FormattingIssues: checkFormattingIssues(stringified),
		KeywordAnalysis:  keywords,
	}
}

// overallScore is the floor of the mean of the six section scores.
func overallScore(s SectionScores) int {
	return (s.ContactInfo + s.Summary + s.Experience + s.Education + s.Skills + s.Formatting) / 6
}
