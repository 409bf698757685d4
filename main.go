package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/user/stigscore/cmd"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
