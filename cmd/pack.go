package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wblog/pack"
)

var watch bool

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Generates a directory with the blog contents",
	Long: `The pack command reads the blog content and templates, renders
every page and writes a self-contained static HTML tree to the output
directory. With --watch it stays running and repacks whenever a markdown
file changes.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		log.Info().Str("output", appConfig.Output).Msg("Packing blog")
		if err := pack.Run(appConfig.Templates, appConfig.Content, appConfig.Output); err != nil {
			return err
		}
		log.Info().Msg("Pack finished")
		if !watch {
			return nil
		}
		log.Info().Str("path", appConfig.Content).Msg("Watching content directory for changes")
		return pack.Watch(appConfig.Templates, appConfig.Content, appConfig.Output)
	},
}

func init() {
	packCmd.Flags().String("templates", "", "path to the blog templates directory")
	packCmd.Flags().String("content", "", "path to the blog content directory")
	packCmd.Flags().String("output", "", "path for the generated content files")
	packCmd.Flags().BoolVar(&watch, "watch", false, "stay running and repack on content changes")
	rootCmd.AddCommand(packCmd)
}
