// Command wildlife runs the wildlife discovery API and its maintenance
// tasks.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is a local development convenience; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
