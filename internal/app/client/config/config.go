package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"studentkeeper/internal/domain/student"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

const (
	defaultEnv           = EnvLocal
	defaultLogLevel      = "info"
	defaultConfigDir     = ".studentkeeper"
	defaultStorageDriver = DriverFile
	defaultNamespace     = "studentkeeper"
	defaultRedisAddr     = "localhost:6379"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	LogLevel      string `mapstructure:"log_level"`
	ConfigDir     string `mapstructure:"config_dir"`
	StorageDriver string `mapstructure:"storage_driver"`
	DataPath      string `mapstructure:"data_path"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	PostgresDSN   string `mapstructure:"postgres_dsn"`
	Namespace     string `mapstructure:"storage_namespace"`
	CollectionKey string `mapstructure:"collection_key"`
	ClearScope    string `mapstructure:"clear_scope"`
	// Passphrase включает шифрование хранилища, пустое значение отключает шифрование
	Passphrase string `mapstructure:"storage_passphrase"`
}

// LoadDotEnv загружает .env из текущей или родительской директории, если он есть
func LoadDotEnv() error {
	for _, envPath := range []string{".env", "../.env"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("load %s: %w", envPath, err)
			}
			return nil
		}
	}
	return nil
}

// Load reads the configuration from v. Environment variables override file values.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("STORAGE_DRIVER", defaultStorageDriver)
	v.SetDefault("STORAGE_NAMESPACE", defaultNamespace)
	v.SetDefault("COLLECTION_KEY", student.DefaultKey)
	v.SetDefault("CLEAR_SCOPE", string(student.ClearCollection))
	v.SetDefault("REDIS_ADDR", defaultRedisAddr)
	v.SetDefault("REDIS_DB", 0)

	// Относительный путь по умолчанию живёт в домашней директории
	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	dataPath := v.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "data")
	}
	sqlitePath := v.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join(configDir, "students.db")
	}

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		ConfigDir:     configDir,
		StorageDriver: v.GetString("STORAGE_DRIVER"),
		DataPath:      dataPath,
		SQLitePath:    sqlitePath,
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		PostgresDSN:   v.GetString("POSTGRES_DSN"),
		Namespace:     v.GetString("STORAGE_NAMESPACE"),
		CollectionKey: v.GetString("COLLECTION_KEY"),
		ClearScope:    v.GetString("CLEAR_SCOPE"),
		Passphrase:    v.GetString("STORAGE_PASSPHRASE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite:
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr не может быть пустым для драйвера %s", c.StorageDriver)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn не может быть пустым для драйвера %s", c.StorageDriver)
		}
	default:
		return fmt.Errorf("неизвестный storage_driver: %q", c.StorageDriver)
	}

	if c.CollectionKey == "" {
		return fmt.Errorf("collection_key не может быть пустым")
	}
	if c.Namespace == "" {
		return fmt.Errorf("storage_namespace не может быть пустым")
	}
	if _, err := student.ParseClearScope(c.ClearScope); err != nil {
		return err
	}
	return nil
}

// Scope returns the parsed clear scope. Load has already validated it.
func (c *Config) Scope() student.ClearScope {
	scope, _ := student.ParseClearScope(c.ClearScope)
	return scope
}

// Encrypted reports whether stored values are sealed with a passphrase.
func (c *Config) Encrypted() bool {
	return c.Passphrase != ""
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
