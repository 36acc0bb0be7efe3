// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultDatasetPath       = "~/.beattrees/dataset.csv"
	DefaultLogPath           = "~/.beattrees/beattrees.log"
	DefaultLogLevel          = "info"
	DefaultNotificationDelay = 1500 * time.Millisecond
)

// Config структура для хранения конфигурации приложения
type Config struct {
	// Dataset путь к файлу или URL (http(s)://, s3://, gs://)
	Dataset string `yaml:"dataset"`
	// CachePath куда команда download сохраняет удаленный датасет
	CachePath         string        `yaml:"cache_path"`
	NotificationDelay time.Duration `yaml:"notification_delay"`

	LogLevel string `yaml:"log_level"`
	LogPath  string `yaml:"log_path"`

	AwsAccessKey string `yaml:"aws_access_key"`
	AwsSecretKey string `yaml:"aws_secret_key"`
	AwsRegion    string `yaml:"aws_region"`
	AwsEndpoint  string `yaml:"aws_endpoint"`

	GCSCredentialsFile string `yaml:"gcs_credentials_file"`
}

// envOverrides переменные окружения, переопределяющие значения из файла
var envOverrides = map[string]func(*Config, string){
	"BEATTREES_DATASET":    func(c *Config, v string) { c.Dataset = v },
	"BEATTREES_CACHE_PATH": func(c *Config, v string) { c.CachePath = v },
	"BEATTREES_LOG_LEVEL":  func(c *Config, v string) { c.LogLevel = v },
	"BEATTREES_LOG_PATH":   func(c *Config, v string) { c.LogPath = v },
	"AWS_ACCESS_KEY":       func(c *Config, v string) { c.AwsAccessKey = v },
	"AWS_SECRET_KEY":       func(c *Config, v string) { c.AwsSecretKey = v },
	"AWS_REGION":           func(c *Config, v string) { c.AwsRegion = v },
	"AWS_ENDPOINT":         func(c *Config, v string) { c.AwsEndpoint = v },
	"GCS_CREDENTIALS_FILE": func(c *Config, v string) { c.GCSCredentialsFile = v },
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, используются значения по умолчанию. Переменные окружения
// (в том числе из .env) имеют приоритет над файлом.
func LoadConfig(filePath string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	data, err := os.ReadFile(expandHome(filePath, home))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Работаем на значениях по умолчанию
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора yaml конфигурации: %w", err)
		}
	}

	for name, apply := range envOverrides {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			apply(config, v)
		}
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.Dataset == "" {
		config.Dataset = DefaultDatasetPath
	}
	if config.CachePath == "" {
		config.CachePath = DefaultDatasetPath
	}
	if config.LogPath == "" {
		config.LogPath = DefaultLogPath
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.NotificationDelay <= 0 {
		config.NotificationDelay = DefaultNotificationDelay
	}

	// Раскрываем тильду в локальных путях
	if !IsRemote(config.Dataset) {
		config.Dataset = expandHome(config.Dataset, home)
	}
	config.CachePath = expandHome(config.CachePath, home)
	config.LogPath = expandHome(config.LogPath, home)
	config.GCSCredentialsFile = expandHome(config.GCSCredentialsFile, home)

	return config, nil
}

// IsRemote сообщает, указывает ли адрес датасета на удаленное хранилище
func IsRemote(location string) bool {
	for _, prefix := range []string{"http://", "https://", "s3://", "gs://"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

// expandHome заменяет ведущую тильду домашней директорией
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}
