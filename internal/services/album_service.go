package services

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/models"
	"github.com/vlados-13/api/internal/repository"
)

// AlbumService определяет интерфейс для сервиса работы с каталогом альбомов.
// userID в мутирующих операциях приходит из проверенного токена; владение
// альбомами не отслеживается, идентификатор используется только в логах.
type AlbumService interface {
	List() ([]models.Album, error)
	Get(id int64) (*models.Album, error)
	Create(input *models.AlbumInput, userID int64) (*models.Album, error)
	Update(id int64, input *models.AlbumInput, userID int64) (*models.Album, error)
	Delete(id int64, userID int64) error
}

// Проверка соответствия интерфейсу.
var _ AlbumService = (*albumService)(nil)

type albumService struct {
	albumRepo repository.AlbumRepository // Зависимость от репозитория альбомов
}

// NewAlbumService создает новый экземпляр сервиса альбомов.
func NewAlbumService(albumRepo repository.AlbumRepository) AlbumService {
	return &albumService{albumRepo: albumRepo}
}

// List возвращает весь каталог альбомов в порядке добавления.
func (s *albumService) List() ([]models.Album, error) {
	albums, err := s.albumRepo.ListAlbums(context.Background())
	if err != nil {
		log.Printf("[AlbumService] Ошибка репозитория при получении списка альбомов: %v", err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка альбомов")
	}
	return albums, nil
}

// Get возвращает альбом по идентификатору.
func (s *albumService) Get(id int64) (*models.Album, error) {
	album, err := s.albumRepo.GetAlbumByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return nil, ErrAlbumNotFound // Возвращаем ошибку сервисного слоя
		}
		log.Printf("[AlbumService] Ошибка репозитория при получении альбома %d: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении альбома")
	}
	return album, nil
}

// Create добавляет новый альбом в каталог. Не заполненные во входных данных
// поля сохраняются пустыми.
func (s *albumService) Create(input *models.AlbumInput, userID int64) (*models.Album, error) {
	album := &models.Album{}
	input.Apply(album)

	id, err := s.albumRepo.CreateAlbum(context.Background(), album)
	if err != nil {
		log.Printf("[AlbumService] Ошибка репозитория при создании альбома (пользователь %d): %v", userID, err)
		return nil, errors.New("внутренняя ошибка сервера при создании альбома")
	}
	album.ID = id

	log.Printf("[AlbumService] Пользователь %d создал альбом %d", userID, id)
	return album, nil
}

// Update частично обновляет альбом: меняются только поля, явно присутствующие
// во входных данных, остальные сохраняют прежние значения.
func (s *albumService) Update(id int64, input *models.AlbumInput, userID int64) (*models.Album, error) {
	album, err := s.albumRepo.UpdateAlbum(context.Background(), id, input)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return nil, ErrAlbumNotFound
		}
		log.Printf("[AlbumService] Ошибка репозитория при обновлении альбома %d (пользователь %d): %v", id, userID, err)
		return nil, errors.New("внутренняя ошибка сервера при обновлении альбома")
	}

	log.Printf("[AlbumService] Пользователь %d обновил альбом %d", userID, id)
	return album, nil
}

// Delete удаляет альбом из каталога.
func (s *albumService) Delete(id int64, userID int64) error {
	err := s.albumRepo.DeleteAlbum(context.Background(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return ErrAlbumNotFound
		}
		log.Printf("[AlbumService] Ошибка репозитория при удалении альбома %d (пользователь %d): %v", id, userID, err)
		return errors.New("внутренняя ошибка сервера при удалении альбома")
	}

	log.Printf("[AlbumService] Пользователь %d удалил альбом %d", userID, id)
	return nil
}

// ErrAlbumNotFound возвращается, когда запрошенный альбом отсутствует в каталоге.
var ErrAlbumNotFound = errors.New("альбом не найден")
