package ats

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

func contactOnlySnapshot() Snapshot {
	return Snapshot{
		FullName: "Jane Doe",
		Email:    "a@b.com",
		Phone:    "555-1234",
		City:     "NYC",
	}
}

func TestContactOnlyScenario(t *testing.T) {
	result := Analyze(contactOnlySnapshot(), "")

	if result.Scores.ContactInfo != 100 {
		t.Fatalf("contact score = %d, want 100", result.Scores.ContactInfo)
	}
	for name, got := range map[string]int{
		"summary":    result.Scores.Summary,
		"experience": result.Scores.Experience,
		"education":  result.Scores.Education,
		"skills":     result.Scores.Skills,
	} {
		if got != 0 {
			t.Fatalf("%s score = %d, want 0", name, got)
		}
	}
	if result.Scores.Formatting != 100 {
		t.Fatalf("formatting score = %d, want 100", result.Scores.Formatting)
	}
	if result.OverallScore != 33 {
		t.Fatalf("overall score = %d, want 33", result.OverallScore)
	}
}

func TestSummaryActionVerbScenario(t *testing.T) {
	s := Snapshot{Summary: "Experienced engineer led three major product launches, increasing revenue 30%."}
	if got := scoreSummary(s); got != 50 {
		t.Fatalf("summary score = %d, want 50", got)
	}
}

func TestSummaryScoring(t *testing.T) {
	longBody := strings.Repeat("a", 98)
	cases := []struct {
		name    string
		summary string
		want    int
	}{
		{"empty", "", 0},
		{"short no verb no period", "Engineer", 20},
		{"mid length with period", longBody + "m.", 55},
		{"exactly 500 gets inclusive bonus", strings.Repeat("x", 499) + ".", 55},
		{"over 500 gets smaller bonus", strings.Repeat("x", 500) + ".", 45},
		{"verb bonus", "Developed systems.", 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreSummary(Snapshot{Summary: tc.summary}); got != tc.want {
				t.Fatalf("scoreSummary(%q) = %d, want %d", tc.summary, got, tc.want)
			}
		})
	}
}

func TestExperienceScoring(t *testing.T) {
	cases := []struct {
		name        string
		experiences []Experience
		want        int
	}{
		{"zero entries is zero", nil, 0},
		{"single entry no description", []Experience{{JobTitle: "Dev"}}, 65},
		{"two entries with descriptions", []Experience{
			{Description: "Built services"},
			{Description: "Maintained pipelines"},
		}, 75},
		{"achievement bonus", []Experience{
			{Description: "Cut latency 50%"},
			{Description: "Cut costs 50%"},
		}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreExperience(Snapshot{Experiences: tc.experiences}); got != tc.want {
				t.Fatalf("scoreExperience = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestExperienceAchievementBonusRaisesScore(t *testing.T) {
	plain := Snapshot{Experiences: []Experience{
		{Description: "Worked on backend services"},
		{Description: "Worked on frontend apps"},
	}}
	quantified := Snapshot{Experiences: []Experience{
		{Description: "Improved throughput 50%"},
		{Description: "Reduced errors 50%"},
	}}
	diff := scoreExperience(quantified) - scoreExperience(plain)
	if diff < 25 {
		t.Fatalf("achievement bonus raised score by %d, want >= 25", diff)
	}
}

func TestEducationScoring(t *testing.T) {
	cases := []struct {
		name      string
		education []Education
		want      int
	}{
		{"zero entries", nil, 0},
		{"bare entry", []Education{{}}, 40},
		{"degree only", []Education{{Degree: "BSc"}}, 70},
		{"degree and institution", []Education{{Degree: "BSc", Institution: "MIT"}}, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreEducation(Snapshot{Education: tc.education}); got != tc.want {
				t.Fatalf("scoreEducation = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSkillsScoring(t *testing.T) {
	many := make([]Skill, 10)
	for i := range many {
		many[i] = Skill{Name: "skill", Category: "tech", Level: "expert"}
	}
	cases := []struct {
		name   string
		skills []Skill
		want   int
	}{
		{"zero entries", nil, 0},
		{"few plain skills", []Skill{{Name: "go"}}, 30},
		{"five skills", []Skill{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}}, 45},
		{"ten rich skills", many, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreSkills(Snapshot{Skills: tc.skills}); got != tc.want {
				t.Fatalf("scoreSkills = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormattingScore(t *testing.T) {
	if got := scoreFormatting("plain resume text"); got != 100 {
		t.Fatalf("plain text = %d, want 100", got)
	}
	if got := scoreFormatting("uses a Table layout"); got != 70 {
		t.Fatalf("table penalty = %d, want 70", got)
	}
	// Header bonus is case-sensitive and cannot push past the clamp.
	if got := scoreFormatting("Experience section present"); got != 100 {
		t.Fatalf("header bonus clamped = %d, want 100", got)
	}
	if got := scoreFormatting("table layout but Experience header"); got != 80 {
		t.Fatalf("penalty plus bonus = %d, want 80", got)
	}
}

func TestOverallScoreIsFloorOfMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		s := SectionScores{
			ContactInfo: rng.Intn(101),
			Summary:     rng.Intn(101),
			Experience:  rng.Intn(101),
			Education:   rng.Intn(101),
			Skills:      rng.Intn(101),
			Formatting:  rng.Intn(101),
		}
		sum := s.ContactInfo + s.Summary + s.Experience + s.Education + s.Skills + s.Formatting
		if got := overallScore(s); got != sum/6 {
			t.Fatalf("overallScore(%+v) = %d, want %d", s, got, sum/6)
		}
	}
}

func TestMatchRateZeroWithEmptyJobDescription(t *testing.T) {
	s := Snapshot{
		Summary: "python developer with leadership experience",
		Skills:  []Skill{{Name: "python"}, {Name: "sql"}},
	}
	result := Analyze(s, "")
	if result.KeywordAnalysis.MatchRate != 0 {
		t.Fatalf("match rate = %v, want 0", result.KeywordAnalysis.MatchRate)
	}
	if len(result.Keywords) != 0 {
		t.Fatalf("matched = %v, want empty", result.Keywords)
	}
}

func TestKeywordMatching(t *testing.T) {
	s := Snapshot{
		Summary: "Developed python services",
		Skills:  []Skill{{Name: "sql"}},
	}
	jd := "Looking for python and sql developer with docker and kubernetes"

	match := matchKeywords(s, jd)

	wantMatched := []string{"python", "sql"}
	if len(match.Matched) != len(wantMatched) {
		t.Fatalf("matched = %v, want %v", match.Matched, wantMatched)
	}
	for i, w := range wantMatched {
		if match.Matched[i] != w {
			t.Fatalf("matched = %v, want %v", match.Matched, wantMatched)
		}
	}

	wantMissing := []string{"docker", "kubernetes"}
	if len(match.Missing) != len(wantMissing) {
		t.Fatalf("missing = %v, want %v", match.Missing, wantMissing)
	}

	// 2 of 4 relevant job keywords matched.
	if match.MatchRate != 50 {
		t.Fatalf("match rate = %v, want 50", match.MatchRate)
	}
	if match.TotalMatched != 2 || match.TotalMissing != 2 {
		t.Fatalf("totals = %d/%d, want 2/2", match.TotalMatched, match.TotalMissing)
	}
}

func TestMissingKeywordsAreJobRelevantAndAbsentFromResume(t *testing.T) {
	s := Snapshot{Summary: "python engineer who improved deployment pipelines"}
	jd := "python docker kubernetes leadership walrus"

	match := matchKeywords(s, jd)
	resumeWords := tokenize(resumeText(s))
	jobWords := tokenize(jd)

	for _, word := range match.Missing {
		if _, ok := referenceVocabulary[word]; !ok {
			t.Fatalf("missing keyword %q not in reference vocabulary", word)
		}
		if _, ok := jobWords[word]; !ok {
			t.Fatalf("missing keyword %q not in job description", word)
		}
		if _, ok := resumeWords[word]; ok {
			t.Fatalf("missing keyword %q present in resume", word)
		}
	}
}

func TestSuggestionOrderIsFixed(t *testing.T) {
	result := Analyze(contactOnlySnapshot(), "docker kubernetes")

	wantTypes := []string{"summary", "experience", "skills", "keywords", "content", "content"}
	if len(result.Suggestions) != len(wantTypes) {
		t.Fatalf("got %d suggestions, want %d: %+v", len(result.Suggestions), len(wantTypes), result.Suggestions)
	}
	for i, want := range wantTypes {
		if result.Suggestions[i].Type != want {
			t.Fatalf("suggestion %d type = %s, want %s", i, result.Suggestions[i].Type, want)
		}
	}
	if result.Suggestions[len(result.Suggestions)-2].Priority != "low" {
		t.Fatalf("action verb suggestion should be low priority")
	}
	if !strings.Contains(result.Suggestions[3].Message, "docker") {
		t.Fatalf("keyword suggestion should list missing keywords, got %q", result.Suggestions[3].Message)
	}
}

func TestKeywordSuggestionListsAtMostFive(t *testing.T) {
	missing := []string{"a", "b", "c", "d", "e", "f", "g"}
	suggestions := buildSuggestions(SectionScores{ContactInfo: 100, Summary: 100, Experience: 100, Skills: 100}, missing)

	var keywordMsg string
	for _, s := range suggestions {
		if s.Type == "keywords" {
			keywordMsg = s.Message
		}
	}
	if keywordMsg == "" {
		t.Fatalf("expected keyword suggestion")
	}
	if got := strings.Count(keywordMsg, ","); got != 4 {
		t.Fatalf("expected 5 keywords (4 commas), got %d in %q", got, keywordMsg)
	}
}

func TestFormattingIssues(t *testing.T) {
	short := checkFormattingIssues("tiny")
	foundShort := false
	for _, issue := range short {
		if issue.Type == "content_length" && issue.Severity == "warning" {
			foundShort = true
		}
	}
	if !foundShort {
		t.Fatalf("expected short-content warning, got %+v", short)
	}

	long := checkFormattingIssues("summary experience education skills " + strings.Repeat("x", 10001))
	if len(long) != 1 || long[0].Severity != "info" {
		t.Fatalf("expected single info issue for long content, got %+v", long)
	}

	missing := checkFormattingIssues(strings.Repeat("summary education ", 50))
	var missingMsg string
	for _, issue := range missing {
		if issue.Type == "missing_sections" {
			missingMsg = issue.Message
		}
	}
	if missingMsg != "Missing sections: experience, skills" {
		t.Fatalf("missing sections message = %q", missingMsg)
	}
}

func TestAnalyzeDoesNotMutateSnapshot(t *testing.T) {
	s := Snapshot{
		Summary:     "Implemented python data analysis tooling over 3 years.",
		Experiences: []Experience{{JobTitle: "Engineer", Description: "Improved revenue 30%"}},
		Skills:      []Skill{{Name: "python", Category: "tech", Level: "expert"}},
	}
	before := s.Stringify()
	_ = Analyze(s, "python sql")
	if s.Stringify() != before {
		t.Fatalf("snapshot mutated by analysis")
	}
}

func TestResultSerializedShape(t *testing.T) {
	s := Snapshot{
		Summary: "Developed python services",
		Skills:  []Skill{{Name: "python"}},
	}
	raw, err := json.Marshal(Analyze(s, "python docker"))
	if err != nil {
		t.Fatal(err)
	}
	var report map[string]json.RawMessage
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"overall_score", "section_scores", "keywords", "missing_keywords",
		"suggestions", "formatting_issues", "keyword_analysis",
	} {
		if _, ok := report[key]; !ok {
			t.Fatalf("report is missing %q: %s", key, raw)
		}
	}
	if _, ok := report["scores"]; ok {
		t.Fatalf("report carries a stray scores key: %s", raw)
	}

	var matched []string
	if err := json.Unmarshal(report["keywords"], &matched); err != nil {
		t.Fatalf("keywords is not a flat list: %v", err)
	}
	if len(matched) != 1 || matched[0] != "python" {
		t.Fatalf("keywords = %v, want [python]", matched)
	}
	var missing []string
	if err := json.Unmarshal(report["missing_keywords"], &missing); err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 || missing[0] != "docker" {
		t.Fatalf("missing_keywords = %v, want [docker]", missing)
	}

	var analysis map[string]any
	if err := json.Unmarshal(report["keyword_analysis"], &analysis); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"matched", "missing", "match_rate", "total_matched", "total_missing"} {
		if _, ok := analysis[key]; !ok {
			t.Fatalf("keyword_analysis is missing %q: %s", key, report["keyword_analysis"])
		}
	}
	if analysis["total_matched"].(float64) != 1 || analysis["total_missing"].(float64) != 1 {
		t.Fatalf("totals = %v/%v, want 1/1", analysis["total_matched"], analysis["total_missing"])
	}
}
