package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"vibecode_spa/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stderr).ExecuteContext(context.Background()); err != nil {
		log.Fatal("startup failed", "err", err)
	}
}
