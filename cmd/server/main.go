package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/handlers"
	appmiddleware "github.com/vlados-13/api/internal/middleware"
	"github.com/vlados-13/api/internal/repository"
	"github.com/vlados-13/api/internal/services"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second
)

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	authHandler  *handlers.AuthHandler
	albumHandler *handlers.AlbumHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера каталога альбомов...")

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Инициализация зависимостей
	deps := setupDependencies(cfg)

	// Настройка роутера
	r := setupRouter(deps.authHandler, deps.albumHandler, cfg.JWTSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	log.Printf("Запуск HTTP-сервера на порту %s...", cfg.Port)
	log.Printf("Каталог данных: %s", cfg.DataDir)

	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска HTTP-сервера: %w", err)
	}
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(cfg *config) *dependencies {
	// 1. Файловое хранилище (каталог с users.json и albums.json)
	store := repository.NewFileStore(cfg.DataDir)

	// 2. Создание репозиториев
	userRepo := repository.NewFileUserRepository(store)
	albumRepo := repository.NewFileAlbumRepository(store)

	// 3. Создание сервисов
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	albumService := services.NewAlbumService(albumRepo)

	// 4. Создание обработчиков
	return &dependencies{
		authHandler:  handlers.NewAuthHandler(authService),
		albumHandler: handlers.NewAlbumHandler(albumService),
	}
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(authHandler *handlers.AuthHandler, albumHandler *handlers.AlbumHandler, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Каталог читают браузерные клиенты с любых origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// --- Маршруты --- //
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	// Определяем базовый маршрут /api
	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты (регистрация, вход)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Route("/albums", func(r chi.Router) {
			// Чтение каталога доступно без токена
			r.Get("/", albumHandler.List)
			r.Get("/{id}", albumHandler.Get)

			// Мутации требуют аутентификации
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.Authenticator(jwtSecret))

				r.Post("/", albumHandler.Create)
				r.Put("/{id}", albumHandler.Update)
				r.Delete("/{id}", albumHandler.Delete)
			})
		})
	})
	return r
}
