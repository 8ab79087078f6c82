// ABOUTME: Entry point for the pcmstream player
// ABOUTME: Hands off to the cobra command tree
package main

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/pcmstream/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
