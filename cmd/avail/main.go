package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version stores a package-level helper value.
var version = "dev"

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
