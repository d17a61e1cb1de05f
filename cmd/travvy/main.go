// cmd/travvy/main.go
package main

import (
	travvy "github.com/mwiater/travvy/internal/commands"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = travvy.SetVersionInfo
	executeCmd     = travvy.Execute
)

// main starts the travvy CLI by delegating to the cobra root command.
// Configuration, logging and the chosen transport are set up by the commands.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
