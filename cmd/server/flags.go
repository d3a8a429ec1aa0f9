package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	// Значения по умолчанию.
	defaultServerPort = "8080"
	defaultDataDir    = "data"
	defaultJWTSecret  = "secret_key"

	// Переменные окружения.
	envServerPort = "SERVER_PORT"
	envDataDir    = "DATA_DIR"
	envJWTSecret  = "JWT_SECRET_KEY"
)

// config хранит конфигурацию сервера.
type config struct {
	Port      string
	DataDir   string
	JWTSecret string
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Приоритет: флаг > переменная окружения > значение по умолчанию.
// Переменные окружения могут приходить из файла .env (если он есть).
func parseFlags(args []string) (*config, error) {
	// Подхватываем .env из рабочего каталога; отсутствие файла - не ошибка
	if err := godotenv.Load(); err == nil {
		log.Println("Загружены переменные окружения из .env")
	}

	cfg := &config{}
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт для запуска HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	fs.StringVar(&cfg.DataDir, "data-dir", "",
		fmt.Sprintf("Каталог с JSON-файлами данных (env: %s, default: %s)", envDataDir, defaultDataDir))
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Секретный ключ для подписи токенов (env: %s)", envJWTSecret))

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("ошибка разбора флагов: %w", err)
	}

	// Применяем переменные окружения, если флаги не заданы
	if cfg.Port == "" {
		cfg.Port = getEnv(envServerPort, defaultServerPort)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = getEnv(envDataDir, defaultDataDir)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = getEnv(envJWTSecret, defaultJWTSecret)
	}

	return cfg, nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	log.Printf("Переменная окружения '%s' не установлена, используется значение по умолчанию: '%s'", key, fallback)
	return fallback
}
