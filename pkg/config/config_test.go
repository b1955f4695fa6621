package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR la caché queda deshabilitada")
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, 2*time.Minute, cfg.Padding.CacheTTL)
	assert.Equal(t, 30, cfg.Padding.DefaultShelfLifeDays)
	assert.Equal(t, 365, cfg.Padding.NonPerishableShelfLifeDays)
}

func TestFromViper_EnteroInvalidoUsaDefecto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "no-es-numero")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
}

func TestFromViper_ProductionExigeSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ops", Password: "p@ss:w/rd", DBName: "ops", SSLMode: "disable"}
	assert.Equal(t, "postgres://ops:p%40ss%3Aw%2Frd@db:5432/ops?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
