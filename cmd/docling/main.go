package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is the top-level command structure, following cmd/chunky's layout:
// one subcommand per verb, a shared Options struct embedded in each, and a
// Kong-driven main.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert documents to JSON, Markdown, or plain text"`
	Chunk   ChunkCmd   `cmd:"" help:"Convert documents and split them into token-budgeted chunks"`
	Init    InitCmd    `cmd:"init" help:"Initialize a .doclingrc configuration file"`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("docling"),
		kong.Description("Convert and chunk heterogeneous documents for retrieval-augmented generation"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
