package config

// Config carries the directory layout and listen address of the blog,
// resolved from flags, environment variables and the optional config file.
type Config struct {
	Templates string `mapstructure:"templates"`
	Content   string `mapstructure:"content"`
	Output    string `mapstructure:"output"`
	Address   string `mapstructure:"address"`
}
