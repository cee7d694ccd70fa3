package tui

// timerFiredMsg carries a clock callback into Update.
type timerFiredMsg struct {
	timer *programTimer
	fn    func()
}

// downloadDoneMsg reports the outcome of a clip export.
type downloadDoneMsg struct {
	path string
	err  error
}
