package aiwriter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	last  string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.last = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestTemplateSummary(t *testing.T) {
	svc := NewService(nil)

	result := svc.GenerateSummary(context.Background(), SummaryInput{
		Name:            "Jane",
		ExperienceCount: 2,
		Skills:          []string{"Go", "SQL"},
	})
	assert.Equal(t,
		"Results-driven professional with 4+ years of experience delivering high-quality solutions. "+
			"Skilled in Go, SQL. Committed to excellence and continuous improvement.",
		result.Content)
	assert.Len(t, result.Suggestions, 3)
}

func TestTemplateSummaryUsesJobDescriptionLead(t *testing.T) {
	svc := NewService(nil)

	result := svc.GenerateSummary(context.Background(), SummaryInput{
		ExperienceCount: 1,
		JobDescription:  "Backend engineering role",
	})
	assert.Contains(t, result.Content, "in Backend. ")
	assert.Contains(t, result.Content, "various technologies")
}

func TestTemplateSummaryCapsSkillsAtFive(t *testing.T) {
	svc := NewService(nil)

	result := svc.GenerateSummary(context.Background(), SummaryInput{
		Skills: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	assert.Contains(t, result.Content, "Skilled in a, b, c, d, e.")
	assert.NotContains(t, result.Content, ", f")
}

func TestGenerateSummaryFallsBackOnError(t *testing.T) {
	stub := &stubCompleter{err: assert.AnError}
	svc := NewService(stub)

	result := svc.GenerateSummary(context.Background(), SummaryInput{ExperienceCount: 1})
	assert.Contains(t, result.Content, "Results-driven professional")
	assert.Len(t, result.Suggestions, 3)
}

func TestGenerateSummaryUsesCompleter(t *testing.T) {
	stub := &stubCompleter{reply: "  A crisp summary.  "}
	svc := NewService(stub)

	result := svc.GenerateSummary(context.Background(), SummaryInput{Name: "Jane", ExperienceCount: 3})
	assert.Equal(t, "A crisp summary.", result.Content)
	assert.Empty(t, result.Suggestions)
	assert.Contains(t, stub.last, "Experience: 6 years")
}

func TestTemplateExperience(t *testing.T) {
	svc := NewService(nil)

	result := svc.GenerateExperience(context.Background(), "Acme", "Engineer", nil)
	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, "Responsible for Engineer role at Acme", result.Suggestions[0])

	result = svc.GenerateExperience(context.Background(), "Acme", "Engineer",
		[]string{"Shipped v2", "Cut latency", "Mentored juniors", "Extra"})
	require.Len(t, result.Suggestions, 6)
	assert.Equal(t, "Key Engineer responsibilities and achievements at Acme", result.Suggestions[0])
	assert.Equal(t, "- Shipped v2", result.Suggestions[3])
	assert.NotContains(t, result.Content, "Extra")
}

func TestSuggestSkillsTemplate(t *testing.T) {
	svc := NewService(nil)

	result := svc.SuggestSkills(context.Background(), "Developer", "technology")
	assert.Len(t, result.Suggestions, 19)
	assert.Contains(t, result.Content, "Communication")
}

func TestSuggestSkillsParsesCommaList(t *testing.T) {
	stub := &stubCompleter{reply: "Go, Kubernetes , SQL,,Terraform"}
	svc := NewService(stub)

	result := svc.SuggestSkills(context.Background(), "SRE", "technology")
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL", "Terraform"}, result.Suggestions)
}

func TestImproveWithoutAIKeepsContent(t *testing.T) {
	svc := NewService(nil)

	result := svc.Improve(context.Background(), "Led the team", "experience", "")
	assert.Equal(t, "Led the team", result.Content)
	assert.Empty(t, result.Changes)
	assert.Equal(t, 45, result.Score)
}

func TestImproveIdentifiesChanges(t *testing.T) {
	stub := &stubCompleter{reply: "- Led delivery"}
	svc := NewService(stub)

	result := svc.Improve(context.Background(), "I was responsible for making sure deliveries happened", "experience", "")
	types := make([]string, 0, len(result.Changes))
	for _, ch := range result.Changes {
		types = append(types, ch.Type)
	}
	assert.Equal(t, []string{"concise", "formatting", "action_verbs"}, types)
}

func TestBasicScore(t *testing.T) {
	assert.Equal(t, 40, basicScore("short text here"))
	assert.Equal(t, 56, basicScore("Increased revenue by 30% and managed 5 engineers"))
}

func TestCheckGrammarFlagsPassiveVoice(t *testing.T) {
	svc := NewService(nil)

	content := "The project was delivered on time and the goals were met by the team across quarters."
	result := svc.CheckGrammar(content)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "passive_voice", result.Issues[0].Type)
	assert.Equal(t, "Found passive voice constructions (1 occurrences)", result.Issues[0].Message)
	assert.Equal(t, 94, result.Score)
	assert.Equal(t, content, result.Corrected)
}

func TestCheckGrammarFlagsShortContent(t *testing.T) {
	svc := NewService(nil)

	result := svc.CheckGrammar("Too short.")
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "length", result.Issues[0].Type)
	assert.Equal(t, "warning", result.Issues[0].Severity)
	assert.Equal(t, 90, result.Score)
}

func TestCheckGrammarCleanContent(t *testing.T) {
	svc := NewService(nil)

	result := svc.CheckGrammar("Led a team of five engineers building payment infrastructure at scale.")
	assert.Empty(t, result.Issues)
	assert.Equal(t, 100, result.Score)
}

func TestSuggestJobTitlesTiers(t *testing.T) {
	svc := NewService(nil)

	assert.Contains(t, svc.SuggestJobTitles(nil, 0), "Junior Developer")
	assert.Contains(t, svc.SuggestJobTitles(nil, 3), "Project Coordinator")
	assert.Contains(t, svc.SuggestJobTitles(nil, 7), "Team Lead")
	assert.Contains(t, svc.SuggestJobTitles(nil, 15), "VP of Engineering")
}
