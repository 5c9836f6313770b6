package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "freshmart.db", cfg.Database.DSN())
	assert.Equal(t, "adminsecret", cfg.Admin.Secret)
	assert.Equal(t, "seedme", cfg.Seed.Secret)
	assert.Equal(t, 12, cfg.Catalog.DefaultPerPage)
	assert.Equal(t, 0, cfg.Catalog.MaxPerPage)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: 8080
database:
  driver: mysql
  host: db
  port: 3306
  username: shop
  password: pw
  database: shop
admin:
  secret: from-file
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("FRESHMART_ADMIN_SECRET", "from-env")
	t.Setenv("FRESHMART_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Admin.Secret)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "shop:pw@tcp(db:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("url wins", func(t *testing.T) {
		c := DatabaseConfig{Driver: "postgres", URL: "postgres://x", Host: "ignored"}
		assert.Equal(t, "postgres://x", c.DSN())
	})

	t.Run("postgres from parts", func(t *testing.T) {
		c := DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, Username: "u", Password: "p", Database: "d"}
		assert.Equal(t, "host=h user=u password=p dbname=d port=5432 sslmode=disable", c.DSN())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite"},
			Auth:     AuthConfig{TokenSecret: "s"},
			Admin:    SecretConfig{Secret: "a"},
			Seed:     SecretConfig{SecretHash: "$2a$10$abc"},
			Catalog:  CatalogConfig{DefaultPerPage: 12, MaxPerPage: 100},
		}
	}

	require.NoError(t, valid().Validate())

	uncapped := valid()
	uncapped.Catalog.MaxPerPage = 0
	require.NoError(t, uncapped.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"empty token secret", func(c *Config) { c.Auth.TokenSecret = "" }},
		{"no admin credential", func(c *Config) { c.Admin = SecretConfig{} }},
		{"no seed credential", func(c *Config) { c.Seed = SecretConfig{} }},
		{"zero page size", func(c *Config) { c.Catalog.DefaultPerPage = 0 }},
		{"max below default", func(c *Config) { c.Catalog.MaxPerPage = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
