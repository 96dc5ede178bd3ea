package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vsinha/prodseq/pkg/interfaces/cli/commands"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd := commands.NewRootCommand(version)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
