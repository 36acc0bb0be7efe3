package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// clearEnv убирает переменные окружения, влияющие на конфигурацию
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envOverrides {
		t.Setenv(name, "")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	// Создаем временный файл конфигурации
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	testConfig := map[string]string{
		"dataset":            "s3://datasets/spotify.csv",
		"cache_path":         "/tmp/beattrees/dataset.csv",
		"notification_delay": "2s",
		"log_level":          "debug",
		"log_path":           "/tmp/beattrees/app.log",
		"aws_access_key":     "test-access-key",
		"aws_secret_key":     "test-secret-key",
		"aws_region":         "us-east-1",
		"aws_endpoint":       "https://storage.example.com",
	}

	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if loadedConfig.Dataset != "s3://datasets/spotify.csv" {
		t.Errorf("Ожидался Dataset: s3://datasets/spotify.csv, получено: %s", loadedConfig.Dataset)
	}
	if loadedConfig.CachePath != "/tmp/beattrees/dataset.csv" {
		t.Errorf("Ожидался CachePath: /tmp/beattrees/dataset.csv, получено: %s", loadedConfig.CachePath)
	}
	if loadedConfig.NotificationDelay != 2*time.Second {
		t.Errorf("Ожидалась NotificationDelay: 2s, получено: %s", loadedConfig.NotificationDelay)
	}
	if loadedConfig.LogLevel != "debug" {
		t.Errorf("Ожидался LogLevel: debug, получено: %s", loadedConfig.LogLevel)
	}
	if loadedConfig.AwsAccessKey != "test-access-key" {
		t.Errorf("Ожидался AwsAccessKey: test-access-key, получено: %s", loadedConfig.AwsAccessKey)
	}
	if loadedConfig.AwsRegion != "us-east-1" {
		t.Errorf("Ожидался AwsRegion: us-east-1, получено: %s", loadedConfig.AwsRegion)
	}
	if loadedConfig.AwsEndpoint != "https://storage.example.com" {
		t.Errorf("Ожидался AwsEndpoint: https://storage.example.com, получено: %s", loadedConfig.AwsEndpoint)
	}
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)

	// Файла конфигурации нет
	loadedConfig, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	home, _ := os.UserHomeDir()
	expectedDataset := filepath.Join(home, ".beattrees", "dataset.csv")
	if loadedConfig.Dataset != expectedDataset {
		t.Errorf("Ожидался Dataset по умолчанию: %s, получено: %s", expectedDataset, loadedConfig.Dataset)
	}
	if loadedConfig.CachePath != expectedDataset {
		t.Errorf("Ожидался CachePath по умолчанию: %s, получено: %s", expectedDataset, loadedConfig.CachePath)
	}
	if loadedConfig.NotificationDelay != 1500*time.Millisecond {
		t.Errorf("Ожидалась NotificationDelay по умолчанию 1.5s, получено: %s", loadedConfig.NotificationDelay)
	}
	if loadedConfig.LogLevel != "info" {
		t.Errorf("Ожидался LogLevel по умолчанию info, получено: %s", loadedConfig.LogLevel)
	}
}

func TestEnvVarOverride(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	baseConfig := Config{
		Dataset:      "/data/from-file.csv",
		AwsAccessKey: "file-key",
		AwsRegion:    "us-west-1",
		LogLevel:     "info",
	}
	data, err := yaml.Marshal(baseConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	// Переопределяем часть значений через окружение
	t.Setenv("BEATTREES_DATASET", "https://example.com/dataset.csv")
	t.Setenv("AWS_ACCESS_KEY", "env-key")

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if loadedConfig.Dataset != "https://example.com/dataset.csv" {
		t.Errorf("Ожидался Dataset из окружения, получено: %s", loadedConfig.Dataset)
	}
	if loadedConfig.AwsAccessKey != "env-key" {
		t.Errorf("Ожидался AwsAccessKey из окружения: env-key, получено: %s", loadedConfig.AwsAccessKey)
	}
	if loadedConfig.AwsRegion != "us-west-1" {
		t.Errorf("Ожидался AwsRegion из файла: us-west-1, получено: %s", loadedConfig.AwsRegion)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid_config.yaml")

	invalidYAML := `dataset: "/data/dataset.csv"
log_level: "info"
invalid_field: [unclosed array
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Ожидалась ошибка при загрузке некорректного YAML")
	}
	if !strings.Contains(err.Error(), "yaml") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestLoadConfigWithTilde(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	testConfig := Config{
		Dataset:   "~/music/dataset.csv",
		CachePath: "~/cache/dataset.csv",
	}
	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	home, _ := os.UserHomeDir()
	if expected := filepath.Join(home, "music", "dataset.csv"); loadedConfig.Dataset != expected {
		t.Errorf("Ожидался Dataset с раскрытой тильдой: %s, получено: %s", expected, loadedConfig.Dataset)
	}
	if expected := filepath.Join(home, "cache", "dataset.csv"); loadedConfig.CachePath != expected {
		t.Errorf("Ожидался CachePath с раскрытой тильдой: %s, получено: %s", expected, loadedConfig.CachePath)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		location string
		expected bool
	}{
		{"/data/dataset.csv", false},
		{"~/dataset.csv", false},
		{"http://example.com/dataset.csv", true},
		{"https://example.com/dataset.csv", true},
		{"s3://bucket/dataset.csv", true},
		{"gs://bucket/dataset.csv", true},
	}

	for _, test := range tests {
		if result := IsRemote(test.location); result != test.expected {
			t.Errorf("IsRemote(%s) = %v; expected %v", test.location, result, test.expected)
		}
	}
}
