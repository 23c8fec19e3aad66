package session

// Summary holds the data displayed on the round results screen.
type Summary struct {
	Subject  string
	Correct  int
	Answered int
	Total    int
	Accuracy float64
}

// BuildSummary creates a Summary for the engine's current round.
func BuildSummary(e *Engine) Summary {
	correct, answered := e.Score()

	var accuracy float64
	if answered > 0 {
		accuracy = float64(correct) / float64(answered)
	}

	return Summary{
		Subject:  e.Subject(),
		Correct:  correct,
		Answered: answered,
		Total:    RoundSize,
		Accuracy: accuracy,
	}
}
