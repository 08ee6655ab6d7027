package commands

// Version is the application version. Set at build time.
var Version = "0.1.0"

// VersionString returns the line printed by `taskbot version`.
func VersionString() string {
	return "taskbot " + Version
}
