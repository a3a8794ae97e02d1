package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-edit-mcp/internal/cli"
)

func main() {
	cobra.CheckErr(cli.NewCLI().ExecuteContext(context.Background()))
}
