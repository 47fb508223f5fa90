package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "data/mirror.db", cfg.Local.Path)
	assert.Equal(t, 5*time.Second, cfg.Remote.ConnectTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Remote.URL, "sin REMOTE_URL no debe inventarse un endpoint")
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("REMOTE_URL", "postgresql://admin@db.example.co:5432/tienda")
	t.Setenv("REMOTE_KEY", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REMOTE_CONNECT_TIMEOUT_SECONDS", "no-numero")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://admin@db.example.co:5432/tienda", cfg.Remote.URL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Remote.ConnectTimeout, "un valor inválido usa el defecto")
}

func TestRemoteConfig_ConnectionString(t *testing.T) {
	dsn, err := RemoteConfig{URL: "postgresql://admin@db.example.co:5432/tienda?sslmode=require", Key: "p@ss/word"}.ConnectionString()
	require.NoError(t, err)
	assert.Contains(t, dsn, "admin:p%40ss%2Fword@db.example.co:5432", "la credencial debe ir escapada como contraseña")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestRemoteConfig_Invalida(t *testing.T) {
	cases := map[string]RemoteConfig{
		"vacia":        {},
		"esquema":      {URL: "https://db.example.co"},
		"sin host":     {URL: "postgres:///tienda"},
		"no parseable": {URL: "postgres://%zz"},
	}
	for name, rc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rc.ConnectionString()
			assert.ErrorIs(t, err, ErrRemoteConfig)
		})
	}
}
