package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenRunning Screen = iota
	ScreenPreview
	ScreenPublishing
	ScreenDone
	ScreenError
)

func (s Screen) String() string {
	names := []string{
		"Running",
		"Preview",
		"Publishing",
		"Done",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
