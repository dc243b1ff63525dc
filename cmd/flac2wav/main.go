// ABOUTME: Entry point for the flac2wav command
// ABOUTME: Runs the root command and maps any failure to exit status 1
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
