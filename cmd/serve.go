package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wblog/serve"
)

var level string

// logLevels maps the --level flag to zerolog global levels.
var logLevels = map[string]zerolog.Level{
	"off":   zerolog.Disabled,
	"error": zerolog.ErrorLevel,
	"info":  zerolog.InfoLevel,
	"debug": zerolog.DebugLevel,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Dynamically serves the contents of the blog",
	Long: `The serve command renders the blog over HTTP. Pages are
regenerated from the content directory on every request, so edits show up
without a restart.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		lvl, ok := logLevels[level]
		if !ok {
			return fmt.Errorf("unknown log level %q", level)
		}
		zerolog.SetGlobalLevel(lvl)

		server, err := serve.New(appConfig.Templates, appConfig.Content)
		if err != nil {
			return err
		}
		return server.Run(appConfig.Address)
	},
}

func init() {
	serveCmd.Flags().String("templates", "", "path to the blog templates directory")
	serveCmd.Flags().String("content", "", "path to the blog content directory")
	serveCmd.Flags().String("address", "", "address to listen on, for example: localhost:8080")
	serveCmd.Flags().StringVar(&level, "level", "info", "log level: off, error, info, debug")
	rootCmd.AddCommand(serveCmd)
}
