// Maktaba is a chat library assistant: it finds book files by name, with
// Arabic-aware matching, suggestions and curated topical indexes.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A .env file in the working directory may hold MAKTABA_* overrides.
	_ = godotenv.Load()

	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
