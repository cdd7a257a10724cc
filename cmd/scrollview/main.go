// Command scrollview replays scroll view scenarios against the scroll
// delegation and pull-to-refresh core.
package main

import (
	"os"

	"github.com/go-drift/scrollview/cmd/scrollview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
