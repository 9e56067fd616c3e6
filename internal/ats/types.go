package ats

// Snapshot is the resume view consumed by the scoring engine. It carries
// only the fields the heuristics look at.
type Snapshot struct {
	FullName string
	Email    string
	Phone    string
	City     string
	Country  string
	Summary  string

	Experiences []Experience
	Education   []Education
	Skills      []Skill
}

// Experience is one work history entry.
type Experience struct {
	JobTitle    string
	Company     string
	Description string
}

// Education is one education entry.
type Education struct {
	Degree      string
	Institution string
	Description string
}

// Skill is one skill entry.
type Skill struct {
	Name     string
	Category string
	Level    string
}

// SectionScores holds the six per-section scores, each in [0, 100].
type SectionScores struct {
	ContactInfo int `json:"contact_info"`
	Summary     int `json:"summary"`
	Experience  int `json:"experience"`
	Education   int `json:"education"`
	Skills      int `json:"skills"`
	Formatting  int `json:"formatting"`
}

// KeywordMatch reports dictionary keywords shared with and missing from a
// job description.
type KeywordMatch struct {
	Matched      []string `json:"matched"`
	Missing      []string `json:"missing"`
	MatchRate    float64  `json:"match_rate"`
	TotalMatched int      `json:"total_matched"`
	TotalMissing int      `json:"total_missing"`
}

// KeywordExtraction is the standalone keyword report, not tied to scoring.
type KeywordExtraction struct {
	ResumeKeywords []string `json:"resume_keywords"`
	JobKeywords    []string `json:"job_keywords"`
	Matched        []string `json:"matched_keywords"`
	Missing        []string `json:"missing_keywords"`
}

// Suggestion is one improvement hint tied to a section or theme.
type Suggestion struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Issue is a formatting problem detected in the rendered resume text.
type Issue struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Result is the full outcome of an analysis run. Keywords and
// MissingKeywords repeat the KeywordAnalysis lists at the top level for
// clients that only want the flat view.
type Result struct {
	OverallScore     int           `json:"overall_score"`
	Scores           SectionScores `json:"section_scores"`
	Keywords         []string      `json:"keywords"`
	MissingKeywords  []string      `json:"missing_keywords"`
	Suggestions      []Suggestion  `json:"suggestions"`
	FormattingIssues []Issue       `json:"formatting_issues"`
	KeywordAnalysis  KeywordMatch  `json:"keyword_analysis"`
}
