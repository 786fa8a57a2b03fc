package tui

// RefreshDataMsg tells a screen it has just been entered and should reload
type RefreshDataMsg struct{}
