package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/middleware"
	"github.com/vlados-13/api/internal/models"
	"github.com/vlados-13/api/internal/services"
)

// AlbumService определяет интерфейс для сервиса каталога альбомов.
type AlbumService interface {
	List() ([]models.Album, error)
	Get(id int64) (*models.Album, error)
	Create(input *models.AlbumInput, userID int64) (*models.Album, error)
	Update(id int64, input *models.AlbumInput, userID int64) (*models.Album, error)
	Delete(id int64, userID int64) error
}

// AlbumHandler обрабатывает HTTP-запросы к каталогу альбомов.
type AlbumHandler struct {
	service AlbumService
}

// NewAlbumHandler создает новый экземпляр AlbumHandler.
func NewAlbumHandler(s AlbumService) *AlbumHandler {
	return &AlbumHandler{service: s}
}

// albumIDFromRequest извлекает числовой идентификатор альбома из пути.
// Нечисловой идентификатор эквивалентен несуществующему маршруту: 404.
func albumIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// List обрабатывает GET запрос на получение всего каталога альбомов.
func (h *AlbumHandler) List(w http.ResponseWriter, _ *http.Request) {
	albums, err := h.service.List()
	if err != nil {
		log.Printf("[AlbumHandler:List] Ошибка сервиса: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	// Пустой каталог отдаем как [], а не null
	if albums == nil {
		albums = []models.Album{}
	}

	respondJSON(w, http.StatusOK, albums)
}

// Get обрабатывает GET запрос на получение одного альбома по ID.
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := albumIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Альбом не знайдений")
		return
	}

	album, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrAlbumNotFound) {
			respondError(w, http.StatusNotFound, "Альбом не знайдений")
			return
		}
		log.Printf("[AlbumHandler:Get] Ошибка сервиса при получении альбома %d: %v", id, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondJSON(w, http.StatusOK, album)
}

// Create обрабатывает POST запрос на создание альбома.
// Маршрут защищен middleware аутентификации.
func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[AlbumHandler:Create] Не удалось получить userID из контекста")
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	var input models.AlbumInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("[AlbumHandler:Create] Ошибка декодирования запроса: %v", err)
		respondMessage(w, http.StatusBadRequest, "Невірний формат запиту")
		return
	}

	album, err := h.service.Create(&input, userID)
	if err != nil {
		log.Printf("[AlbumHandler:Create] Ошибка сервиса при создании альбома (пользователь %d): %v", userID, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondJSON(w, http.StatusCreated, album)
}

// Update обрабатывает PUT запрос на частичное обновление альбома.
// Маршрут защищен middleware аутентификации.
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[AlbumHandler:Update] Не удалось получить userID из контекста")
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	id, ok := albumIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Альбом не знайдений")
		return
	}

	var input models.AlbumInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("[AlbumHandler:Update] Ошибка декодирования запроса: %v", err)
		respondMessage(w, http.StatusBadRequest, "Невірний формат запиту")
		return
	}

	album, err := h.service.Update(id, &input, userID)
	if err != nil {
		if errors.Is(err, services.ErrAlbumNotFound) {
			respondError(w, http.StatusNotFound, "Альбом не знайдений")
			return
		}
		log.Printf("[AlbumHandler:Update] Ошибка сервиса при обновлении альбома %d (пользователь %d): %v", id, userID, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondJSON(w, http.StatusOK, album)
}

// Delete обрабатывает DELETE запрос на удаление альбома.
// Маршрут защищен middleware аутентификации.
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[AlbumHandler:Delete] Не удалось получить userID из контекста")
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	id, ok := albumIDFromRequest(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Альбом не знайдений")
		return
	}

	if err := h.service.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrAlbumNotFound) {
			respondError(w, http.StatusNotFound, "Альбом не знайдений")
			return
		}
		log.Printf("[AlbumHandler:Delete] Ошибка сервиса при удалении альбома %d (пользователь %d): %v", id, userID, err)
		respondMessage(w, http.StatusInternalServerError, "Внутрішня помилка сервера")
		return
	}

	respondMessage(w, http.StatusOK, "Альбом успішно видалено")
}
