package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
	Audit AuditConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// LogConfig configuración del log operativo (stderr).
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// StoreConfig ubicación y codificación del archivo de stock.
type StoreConfig struct {
	File     string // ruta del CSV de partidas
	Encoding string // utf-8, latin1, windows-1252
}

// AuditConfig archivo donde se registran altas y sumas de stock.
type AuditConfig struct {
	File string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, STOCK_FILE, etc.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom igual que Load pero busca .env y config.env en dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	_ = v.MergeInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			File:     v.GetString("STOCK_FILE"),
			Encoding: v.GetString("STOCK_FILE_ENCODING"),
		},
		Audit: AuditConfig{
			File: v.GetString("AUDIT_LOG_FILE"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "stock-implantes")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STOCK_FILE", "stock_implantes_lotes.csv")
	v.SetDefault("STOCK_FILE_ENCODING", "utf-8")
	v.SetDefault("AUDIT_LOG_FILE", "log.log")
}
