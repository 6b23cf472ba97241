package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wblog/internal/config"
)

var (
	cfgFile   string
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wblog",
	Short: "Simple blog engine",
	Long: `wblog turns a directory of markdown posts with YAML front matter
into a blog, either by packing it into a static HTML tree or by serving it
rendered on demand.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the CLI. Any command error is printed and turns into a
// non-zero exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("templates", "./templates")
	v.SetDefault("content", "./content")
	v.SetDefault("output", "./public")
	v.SetDefault("address", "localhost:8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WBLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	// Flags set explicitly on the invoked command win over config values.
	cmd.Flags().Visit(func(f *pflag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	return nil
}
