package main

import (
	"os"

	"github.com/BrandoCommando/product-taxonomy/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
