package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/models"
	"github.com/vlados-13/api/internal/services"
)

// AuthService определяет интерфейс для сервиса аутентификации.
// Это позволит нам легко подменять реализацию (например, для тестов).
type AuthService interface {
	Register(email, password string) error
	Login(email, password string) (string, error) // Возвращает JWT токен или ошибку
}

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service AuthService // Зависимость от интерфейса, а не конкретной реализации
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса регистрации: %v", err)
		respondMessage(w, http.StatusBadRequest, "Email або пароль відсутні!")
		return
	}

	// Валидация входных данных (простая)
	if req.Email == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустой email или пароль при регистрации")
		respondMessage(w, http.StatusBadRequest, "Email або пароль відсутні!")
		return
	}

	log.Printf("[AuthHandler] Попытка регистрации пользователя: %s", req.Email)

	if err := h.service.Register(req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondMessage(w, http.StatusBadRequest, "Користувач з таким email вже існує!")
			return
		}
		log.Printf("[AuthHandler] Ошибка сервиса при регистрации '%s': %v", req.Email, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondMessage(w, http.StatusCreated, "Користувача успішно зареєстровано!")
	log.Printf("[AuthHandler] Успешная регистрация: %s", req.Email)
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса входа: %v", err)
		respondMessage(w, http.StatusBadRequest, "Email або пароль відсутні!")
		return
	}

	// Валидация входных данных (простая)
	if req.Email == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустой email или пароль при входе")
		respondMessage(w, http.StatusBadRequest, "Email або пароль відсутні!")
		return
	}

	log.Printf("[AuthHandler] Попытка входа пользователя: %s", req.Email)

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Невірні дані для входу!")
			return
		}
		log.Printf("[AuthHandler] Ошибка сервиса при входе '%s': %v", req.Email, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token})
	log.Printf("[AuthHandler] Успешный вход: %s", req.Email)
}
