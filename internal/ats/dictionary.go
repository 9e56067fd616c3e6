package ats

// Keyword dictionary used for matching against job descriptions. Terms are
// stored lowercase. Multi-word terms stay whole in the reference set, so
// they can never match single-word tokens; the scoring heuristic keeps that
// behavior on purpose.
var (
	technicalKeywords = []string{
		"python", "java", "javascript", "sql", "html", "css", "react", "node",
		"aws", "cloud", "docker", "kubernetes", "git", "agile", "scrum",
		"machine learning", "data analysis", "excel", "statistics",
		"project management", "communication", "leadership", "problem solving",
	}

	softSkillKeywords = []string{
		"teamwork", "collaboration", "communication", "leadership",
		"problem solving", "critical thinking", "time management",
		"adaptability", "creativity", "initiative",
	}

	actionVerbs = []string{
		"achieved", "led", "developed", "created", "implemented", "managed",
		"increased", "decreased", "improved", "designed", "organized",
		"coordinated", "analyzed", "presented", "trained",
	}
)

// summaryVerbs are the verbs rewarded in the summary score.
var summaryVerbs = actionVerbs[:5]

// referenceVocabulary is the union of all three categories, built once at
// process start.
var referenceVocabulary = func() map[string]struct{} {
	ref := make(map[string]struct{})
	for _, group := range [][]string{technicalKeywords, softSkillKeywords, actionVerbs} {
		for _, term := range group {
			ref[term] = struct{}{}
		}
	}
	return ref
}()
