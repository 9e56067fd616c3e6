// Package aiwriter generates and improves resume content. With an API key
// it delegates to a chat-completions model; without one it falls back to
// deterministic templates so every endpoint still works offline.
package aiwriter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mahdi67436/cv-maker-web/internal/shared/metrics"
	"github.com/mahdi67436/cv-maker-web/internal/shared/telemetry"
)

type GenerateResult struct {
	Content     string   `json:"content"`
	Suggestions []string `json:"suggestions"`
}

type Change struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type ImproveResult struct {
	Content string   `json:"content"`
	Changes []Change `json:"changes"`
	Score   int      `json:"score"`
}

type GrammarIssue struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Severity   string `json:"severity"`
}

type GrammarResult struct {
	Corrected string         `json:"corrected"`
	Issues    []GrammarIssue `json:"issues"`
	Score     int            `json:"score"`
}

// Service holds an optional Completer. A nil Completer means template-only
// mode; AI failures also degrade to the templates.
type Service struct {
	AI Completer
}

func NewService(ai Completer) *Service {
	return &Service{AI: ai}
}

type SummaryInput struct {
	Name            string
	ExperienceCount int
	Skills          []string
	JobDescription  string
}

func (s *Service) GenerateSummary(ctx context.Context, in SummaryInput) GenerateResult {
	if s.AI == nil {
		return templateSummary(in)
	}
	content, err := s.AI.Complete(ctx, summaryPrompt(in))
	if err != nil {
		metrics.IncAIFallback()
		telemetry.Warn("aiwriter.summary", map[string]any{"error": err.Error()})
		return templateSummary(in)
	}
	return GenerateResult{Content: strings.TrimSpace(content), Suggestions: []string{}}
}

func (s *Service) GenerateExperience(ctx context.Context, company, position string, achievements []string) GenerateResult {
	if s.AI == nil {
		return templateExperience(company, position, achievements)
	}
	highlight := "General responsibilities"
	if len(achievements) > 0 {
		highlight = strings.Join(achievements, ", ")
	}
	prompt := fmt.Sprintf(`Generate professional achievement descriptions for:
Company: %s
Position: %s
Achievements to highlight: %s

Write 3-5 bullet points using action verbs and quantify results where possible.
Format each point starting with a strong action verb.`, company, position, highlight)

	content, err := s.AI.Complete(ctx, prompt)
	if err != nil {
		metrics.IncAIFallback()
		telemetry.Warn("aiwriter.experience", map[string]any{"error": err.Error()})
		return templateExperience(company, position, achievements)
	}
	content = strings.TrimSpace(content)
	return GenerateResult{Content: content, Suggestions: nonEmptyLines(content)}
}

func (s *Service) SuggestSkills(ctx context.Context, jobTitle, industry string) GenerateResult {
	if s.AI == nil {
		return templateSkills()
	}
	prompt := fmt.Sprintf(`Suggest 15-20 relevant skills for a %s in the %s industry.
Include both technical and soft skills.
Format as a comma-separated list.`, jobTitle, industry)

	content, err := s.AI.Complete(ctx, prompt)
	if err != nil {
		metrics.IncAIFallback()
		telemetry.Warn("aiwriter.skills", map[string]any{"error": err.Error()})
		return templateSkills()
	}
	content = strings.TrimSpace(content)
	var skills []string
	for _, part := range strings.Split(content, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return GenerateResult{Content: content, Suggestions: skills}
}

func (s *Service) Improve(ctx context.Context, content, contentType, jobDescription string) ImproveResult {
	if s.AI == nil {
		return ImproveResult{Content: content, Changes: []Change{}, Score: basicScore(content)}
	}
	jobContext := "General professional role"
	if jobDescription != "" {
		jobContext = jobDescription
	}
	prompt := fmt.Sprintf(`Improve the following %s description for a resume.
Job context: %s

Original text:
%s

Provide an improved version that:
1. Uses strong action verbs
2. Quantifies results where possible
3. Removes filler words
4. Is concise but impactful

Return only the improved text, no explanations.`, contentType, jobContext, content)

	improved, err := s.AI.Complete(ctx, prompt)
	if err != nil {
		metrics.IncAIFallback()
		telemetry.Warn("aiwriter.improve", map[string]any{"error": err.Error()})
		return ImproveResult{Content: content, Changes: []Change{}, Score: basicScore(content)}
	}
	improved = strings.TrimSpace(improved)
	return ImproveResult{
		Content: improved,
		Changes: identifyChanges(content, improved),
		Score:   improvedScore(content, improved),
	}
}

var passiveChecks = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`(?i)\bwas\b`), "was"},
	{regexp.MustCompile(`(?i)\bwere\b`), "were"},
	{regexp.MustCompile(`(?i)\bbeen\b`), "been"},
	{regexp.MustCompile(`(?i)\bis being\b`), "is being"},
}

// CheckGrammar runs rule-based checks; it never calls the model.
func (s *Service) CheckGrammar(content string) GrammarResult {
	issues := make([]GrammarIssue, 0)
	if len(content) < 50 {
		issues = append(issues, GrammarIssue{
			Type:     "length",
			Message:  "Content seems too short",
			Severity: "warning",
		})
	}
	for _, check := range passiveChecks {
		matches := check.pattern.FindAllString(content, -1)
		if len(matches) > 0 {
			issues = append(issues, GrammarIssue{
				Type:       "passive_voice",
				Message:    fmt.Sprintf("Found passive voice constructions (%d occurrences)", len(matches)),
				Suggestion: "Consider using active voice",
				Severity:   "info",
			})
		}
	}

	score := 100
	for _, issue := range issues {
		switch issue.Severity {
		case "warning":
			score -= 10
		case "info":
			score -= 3
		}
	}
	if score < 0 {
		score = 0
	}
	return GrammarResult{Corrected: content, Issues: issues, Score: score}
}

// SuggestJobTitles returns title suggestions tiered by years of experience.
func (s *Service) SuggestJobTitles(skills []string, experienceYears int) []string {
	switch {
	case experienceYears < 2:
		return []string{"Junior Developer", "Entry-Level Analyst", "Associate", "Trainee", "Junior Consultant"}
	case experienceYears < 5:
		return []string{"Developer", "Analyst", "Specialist", "Consultant", "Project Coordinator"}
	case experienceYears < 10:
		return []string{"Senior Developer", "Lead Analyst", "Senior Consultant", "Project Manager", "Team Lead"}
	default:
		return []string{"Senior Developer", "Lead Engineer", "Director", "Principal Consultant", "VP of Engineering"}
	}
}

func summaryPrompt(in SummaryInput) string {
	topSkills := "various skills"
	if len(in.Skills) > 0 {
		topSkills = strings.Join(firstN(in.Skills, 5), ", ")
	}
	jd := ""
	if in.JobDescription != "" {
		jd = "Target job: " + in.JobDescription
	}
	return fmt.Sprintf(`Write a professional summary for:
Name: %s
Experience: %d years
Key skills: %s
%s

The summary should:
- Be 2-3 sentences
- Highlight key achievements and skills
- Be ATS-friendly (avoid jargon)
- Sound confident but not arrogant

Return only the summary text.`, in.Name, in.ExperienceCount*2, topSkills, jd)
}

func templateSummary(in SummaryInput) GenerateResult {
	skillText := "various technologies"
	if len(in.Skills) > 0 {
		skillText = strings.Join(firstN(in.Skills, 5), ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results-driven professional with %d+ years of experience ", in.ExperienceCount*2)
	if words := strings.Fields(in.JobDescription); len(words) > 0 {
		fmt.Fprintf(&b, "in %s. ", words[0])
	} else {
		b.WriteString("delivering high-quality solutions. ")
	}
	fmt.Fprintf(&b, "Skilled in %s. ", skillText)
	b.WriteString("Committed to excellence and continuous improvement.")

	return GenerateResult{
		Content: b.String(),
		Suggestions: []string{
			"Add specific achievements",
			"Include metrics and numbers",
			"Tailor to job description",
		},
	}
}

func templateExperience(company, position string, achievements []string) GenerateResult {
	bullets := []string{
		fmt.Sprintf("Responsible for %s role at %s", position, company),
		"Collaborated with cross-functional teams to achieve goals",
		"Demonstrated strong problem-solving skills",
	}
	if len(achievements) > 0 {
		bullets[0] = fmt.Sprintf("Key %s responsibilities and achievements at %s", position, company)
		for _, ach := range firstN(achievements, 3) {
			bullets = append(bullets, "- "+ach)
		}
	}
	return GenerateResult{Content: strings.Join(bullets, "\n"), Suggestions: bullets}
}

var fallbackSkills = []string{
	"Communication", "Teamwork", "Problem Solving", "Time Management",
	"Leadership", "Microsoft Office", "Google Workspace", "Project Management",
	"Data Analysis", "Strategic Planning", "Customer Service", "Adaptability",
	"Python", "JavaScript", "SQL", "HTML/CSS", "Git", "Agile", "Scrum",
}

func templateSkills() GenerateResult {
	return GenerateResult{
		Content:     strings.Join(firstN(fallbackSkills, 15), ", "),
		Suggestions: append([]string(nil), fallbackSkills...),
	}
}

var numberPattern = regexp.MustCompile(`\d+`)

var scoringVerbs = []string{"achieved", "led", "developed", "created", "managed", "increased"}

func basicScore(content string) int {
	score := 50
	words := len(strings.Fields(content))
	if words >= 50 && words <= 200 {
		score += 20
	} else if words < 50 {
		score -= 10
	}

	lower := strings.ToLower(content)
	verbHits := 0
	for _, verb := range scoringVerbs {
		if strings.Contains(lower, verb) {
			verbHits++
		}
	}
	score += min(verbHits*5, 20)

	if numbers := numberPattern.FindAllString(content, -1); len(numbers) > 0 {
		score += min(len(numbers)*3, 15)
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func improvedScore(original, improved string) int {
	base := basicScore(original)
	denom := len(original)
	if denom == 0 {
		denom = 1
	}
	ratio := float64(len(improved)) / float64(denom)
	score := base + int(ratio*20)
	if score > 100 {
		return 100
	}
	return score
}

var changeVerbs = []string{"led", "developed", "managed", "created", "implemented", "increased"}

func identifyChanges(original, improved string) []Change {
	changes := make([]Change, 0)
	if len(improved) < len(original) {
		changes = append(changes, Change{Type: "concise", Description: "Made content more concise"})
	}
	if strings.HasPrefix(improved, "*") || strings.HasPrefix(improved, "-") {
		changes = append(changes, Change{Type: "formatting", Description: "Added bullet point formatting"})
	}
	lower := strings.ToLower(improved)
	for _, verb := range changeVerbs {
		if strings.Contains(lower, verb) {
			changes = append(changes, Change{Type: "action_verbs", Description: "Added strong action verbs"})
			break
		}
	}
	return changes
}

func nonEmptyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}
