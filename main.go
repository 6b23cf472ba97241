package main

import (
	"github.com/rs/zerolog"

	"wblog/cmd"
)

func main() {
	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cmd.Execute()
}
