package cli

var (
	verbose bool

	// for feed and gestures commands
	serverAddr string

	// for gestures command
	gesturesLimit int
	gesturesWatch bool
)
