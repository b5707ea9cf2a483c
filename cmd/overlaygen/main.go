package main

import (
	"os"

	"github.com/magma-lang/overlaygen/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
