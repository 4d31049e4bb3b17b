package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/justyntemme/roulette/internal/app"
)

func main() {
	// ROULETTE_* variables may come from a .env file; a missing file is fine.
	_ = godotenv.Load()

	if err := app.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "roulette:", err)
		os.Exit(1)
	}
}
