package cli

import "fmt"

// Version is stamped at build time.
var Version = "0.1.0"

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("stixpat v" + Version)
	return nil
}
