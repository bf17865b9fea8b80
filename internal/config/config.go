package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// APIKey is the Google Books API key. Empty means anonymous requests.
	APIKey string
	// PageSize is the number of results fetched per search page.
	PageSize int
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("googlebooks.pagesize", 10)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h")

	// Get values from viper
	APIKey = viper.GetString("googlebooks.apikey")
	PageSize = viper.GetInt("googlebooks.pagesize")
}

// SetAPIKey sets the Google Books API key
func SetAPIKey(key string) {
	APIKey = key
}

// SetPageSize sets the search page size
func SetPageSize(size int) {
	PageSize = size
}
