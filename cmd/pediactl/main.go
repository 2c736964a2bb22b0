package main

import (
	"pediacenter/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment is used as is
	_ = godotenv.Load()
	cli.Execute()
}
