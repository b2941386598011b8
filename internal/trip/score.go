package trip

// MinimumKnowledgeScore is the score required to advance from the
// KNOWLEDGE phase to PLANNING.
const MinimumKnowledgeScore = 60

// scoreWeights are the fixed per-category contributions to the knowledge
// score. Each category contributes its full weight or nothing.
var scoreWeights = struct {
	destinations     int
	dates            int
	travelers        int
	budget           int
	preferences      int
	specialOccasions int
	name             int
}{
	destinations:     25,
	dates:            20,
	travelers:        20,
	budget:           15,
	preferences:      10,
	specialOccasions: 5,
	name:             5,
}

// CalculateKnowledgeScore returns how complete the trip's essential
// information is, on a 0-100 scale. Pure: it reads the trip and nothing else.
func CalculateKnowledgeScore(t *Trip) int {
	score := 0

	if len(t.Destinations) > 0 {
		score += scoreWeights.destinations
	}
	if t.Dates.StartDate != "" || t.Dates.DurationDays > 0 {
		score += scoreWeights.dates
	}
	if t.Travelers.Count > 0 {
		score += scoreWeights.travelers
	}
	if t.Budget.TotalAmount > 0 || t.Budget.PerPersonAmount > 0 {
		score += scoreWeights.budget
	}
	if len(t.Preferences.Style) > 0 {
		score += scoreWeights.preferences
	}
	if len(t.SpecialOccasions) > 0 {
		score += scoreWeights.specialOccasions
	}
	if t.Name != "" {
		score += scoreWeights.name
	}

	return score
}

// CanAdvanceToPlanning reports whether the trip has enough information to
// move from KNOWLEDGE to PLANNING. All four conditions are mandatory; this
// is the single gate for that transition.
func CanAdvanceToPlanning(t *Trip) bool {
	return t.KnowledgeScore >= MinimumKnowledgeScore &&
		len(t.Destinations) > 0 &&
		(t.Dates.StartDate != "" || t.Dates.DurationDays > 0) &&
		t.Travelers.Count > 0
}

// PendingQuestions returns the prompts for essential categories that are
// still missing, in a fixed order. Always derived from the current trip
// state, never persisted as ground truth.
func PendingQuestions(t *Trip) []string {
	var questions []string

	if len(t.Destinations) == 0 {
		questions = append(questions, "Where would you like to travel?")
	}
	if t.Dates.StartDate == "" && t.Dates.DurationDays == 0 {
		questions = append(questions, "When are you planning to go, and for how many days?")
	}
	if t.Travelers.Count == 0 {
		questions = append(questions, "How many people are going on this trip?")
	}
	if t.Budget.TotalAmount == 0 && t.Budget.PerPersonAmount == 0 {
		questions = append(questions, "What is the expected budget?")
	}
	if len(t.Preferences.Style) == 0 {
		questions = append(questions, "What do you most want out of this trip? (relaxing, adventure, culture?)")
	}

	return questions
}
