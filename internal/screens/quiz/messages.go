package quiz

// nextRoundMsg is sent when StartNextRound returns.
type nextRoundMsg struct {
	Err error
}
