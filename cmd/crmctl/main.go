package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xavierca1/ligue-crm/internal/cli"
)

func main() {
	if err := cli.RootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "crmctl:", err)
		os.Exit(1)
	}
}
