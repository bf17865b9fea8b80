package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "", APIKey)
	assert.Equal(t, 10, PageSize)
	assert.Equal(t, "./cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "720h", viper.GetString("cache.ttl"))
}

func TestSetters(t *testing.T) {
	originalKey := APIKey
	originalSize := PageSize
	t.Cleanup(func() {
		APIKey = originalKey
		PageSize = originalSize
	})

	SetAPIKey("test-key")
	SetPageSize(25)

	assert.Equal(t, "test-key", APIKey)
	assert.Equal(t, 25, PageSize)
}
