package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yogeshramchandani7/cr360-backend/cmd"
)

func main() {
	// Optional; API keys and DSNs may come from a local .env file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
