package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/libris/internal/config"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the libris application
type CLI struct {
	// Global flags
	APIKey   string `help:"Google Books API key (anonymous requests work with stricter quotas)"`
	PageSize int    `help:"Number of results fetched per page (1-40)" default:"10"`
	Debug    bool   `help:"Enable debug logging"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Search SearchCmd `cmd:"" help:"Search the Google Books catalog"`
	Volume VolumeCmd `cmd:"" help:"Look up a single volume by its ID"`
	Cover  CoverCmd  `cmd:"" help:"Download a volume's cover image"`
	Cache  CacheCmd  `cmd:"" help:"Manage the local response cache"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("libris"),
		kong.Description("A command line client for the Google Books catalog."),
		kong.UsageOnError(),
	)

	initLogging(cli.Debug)
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("googlebooks.pagesize", 10)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.APIKey != "" {
		config.SetAPIKey(cli.APIKey)
	}
	config.SetPageSize(cli.PageSize)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
