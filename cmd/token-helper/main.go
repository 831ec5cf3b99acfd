// Command token-helper keeps the local panel token files in sync with the
// panel database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/illumination-k/token-helper/pkg/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}
	return 0
}
