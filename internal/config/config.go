package config

import (
	"async4x-server/internal/engine"
	"async4x-server/internal/infrastructure/storage"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName - имя необязательного файла конфигурации
const FileName = "async4x.cfg.json"

// EnvPrefix - префикс переменных окружения: ASYNC4X_SERVER_PORT -> server.port
const EnvPrefix = "ASYNC4X"

// Load задает значения по умолчанию и читает файл из configDir, если он есть.
// Переменные окружения перекрывают файл.
func Load(configDir string) error {
	def := engine.NewConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "text")
	viper.SetDefault("debug", false)

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.rateLimit", 10)
	viper.SetDefault("server.rateBurst", 20)

	viper.SetDefault("storage.type", "sqlite")
	viper.SetDefault("storage.sqlite.path", "./async4x.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "async4x")

	viper.SetDefault("engine.maxCombatRounds", def.MaxCombatRounds)
	viper.SetDefault("engine.economicInterval", def.EconomicInterval)
	viper.SetDefault("engine.mineralValue", def.MineralValue)
	viper.SetDefault("engine.logKeep", 500)

	viper.SetDefault("scenario.seed", 0)
	viper.SetDefault("scenario.radius", 4)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// Engine возвращает параметры правил
func Engine() engine.Config {
	return engine.Config{
		MaxCombatRounds:  viper.GetInt("engine.maxCombatRounds"),
		EconomicInterval: viper.GetInt("engine.economicInterval"),
		MineralValue:     viper.GetInt("engine.mineralValue"),
	}
}

// Storage возвращает параметры хранилища партий
func Storage() storage.Config {
	return storage.Config{
		Type:       viper.GetString("storage.type"),
		SqlitePath: viper.GetString("storage.sqlite.path"),
		Host:       viper.GetString("db.host"),
		Port:       viper.GetString("db.port"),
		Username:   viper.GetString("db.username"),
		Password:   viper.GetString("db.password"),
		Database:   viper.GetString("db.database"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}
