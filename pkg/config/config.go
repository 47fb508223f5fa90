package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Remote RemoteConfig
	Local  LocalConfig
	HTTP   HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// RemoteConfig backend relacional alojado (PostgreSQL gestionado, ej. Supabase).
// URL es el endpoint (postgresql://user@host:port/db) y Key la credencial de acceso.
// Si falta o es inválido, la capa de datos arranca igual y todo se sirve desde el espejo local.
type RemoteConfig struct {
	URL            string
	Key            string
	ConnectTimeout time.Duration
}

// ErrRemoteConfig configuración remota ausente o inválida.
var ErrRemoteConfig = errors.New("configuración remota inválida")

// ConnectionString devuelve el DSN con la credencial inyectada como contraseña.
func (c RemoteConfig) ConnectionString() (string, error) {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return "", fmt.Errorf("%w: REMOTE_URL vacío", ErrRemoteConfig)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteConfig, err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("%w: esquema %q no soportado", ErrRemoteConfig, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host vacío", ErrRemoteConfig)
	}
	if c.Key != "" {
		// url.UserPassword maneja caracteres especiales en la credencial
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, c.Key)
	}
	return u.String(), nil
}

// LocalConfig espejo local persistido.
type LocalConfig struct {
	Path string // archivo SQLite
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, REMOTE_URL, REMOTE_KEY, LOCAL_STORE_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "relojeria-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Remote: RemoteConfig{
			URL:            getString(v, "REMOTE_URL", ""),
			Key:            getString(v, "REMOTE_KEY", ""),
			ConnectTimeout: time.Duration(getInt(v, "REMOTE_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Local: LocalConfig{
			Path: getString(v, "LOCAL_STORE_PATH", "data/mirror.db"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
