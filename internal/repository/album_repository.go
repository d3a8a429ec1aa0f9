package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/models"
)

// Имя коллекции альбомов (файл albums.json в каталоге данных).
const albumsCollection = "albums"

// AlbumRepository определяет методы для работы с коллекцией альбомов в хранилище.
type AlbumRepository interface {
	ListAlbums(ctx context.Context) ([]models.Album, error)
	GetAlbumByID(ctx context.Context, id int64) (*models.Album, error)
	CreateAlbum(ctx context.Context, album *models.Album) (int64, error)
	UpdateAlbum(ctx context.Context, id int64, input *models.AlbumInput) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
}

// fileAlbumRepository реализует AlbumRepository поверх JSON-файла.
// Дисциплина та же, что и в репозитории пользователей: вся коллекция в памяти,
// один мьютекс на коллекцию, полная перезапись файла на каждой мутации.
type fileAlbumRepository struct {
	store *FileStore

	mu     sync.Mutex
	albums []models.Album
	nextID int64
	loaded bool
}

// NewFileAlbumRepository создает новый экземпляр репозитория альбомов
// поверх файлового хранилища.
func NewFileAlbumRepository(store *FileStore) AlbumRepository {
	return &fileAlbumRepository{store: store}
}

// ensureLoaded лениво загружает коллекцию из файла при первом обращении.
// Вызывается только под блокировкой.
func (r *fileAlbumRepository) ensureLoaded() error {
	if r.loaded {
		return nil
	}

	if err := r.store.Load(albumsCollection, &r.albums); err != nil {
		return fmt.Errorf("ошибка загрузки коллекции альбомов: %w", err)
	}

	r.nextID = 1
	for i := range r.albums {
		if r.albums[i].ID >= r.nextID {
			r.nextID = r.albums[i].ID + 1
		}
	}

	r.loaded = true
	log.Printf("[AlbumRepo] Загружено альбомов: %d", len(r.albums))
	return nil
}

// ListAlbums возвращает все альбомы в порядке добавления.
func (r *fileAlbumRepository) ListAlbums(_ context.Context) ([]models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	// Отдаем копию, чтобы вызывающий код не мог изменить коллекцию
	// в обход мьютекса.
	result := make([]models.Album, len(r.albums))
	copy(result, r.albums)
	return result, nil
}

// GetAlbumByID находит альбом по идентификатору линейным поиском.
// Возвращает альбом или ErrAlbumNotFound.
func (r *fileAlbumRepository) GetAlbumByID(_ context.Context, id int64) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	for i := range r.albums {
		if r.albums[i].ID == id {
			album := r.albums[i]
			return &album, nil
		}
	}

	log.Printf("[AlbumRepo] Альбом с ID %d не найден", id)
	return nil, ErrAlbumNotFound
}

// CreateAlbum добавляет новый альбом и сохраняет коллекцию на диск.
// Возвращает ID созданного альбома или ошибку.
func (r *fileAlbumRepository) CreateAlbum(_ context.Context, album *models.Album) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return 0, err
	}

	created := *album
	created.ID = r.nextID

	updated := append(append([]models.Album(nil), r.albums...), created)
	if err := r.store.Save(albumsCollection, updated); err != nil {
		log.Printf("[AlbumRepo] Ошибка сохранения коллекции альбомов: %v", err)
		return 0, fmt.Errorf("ошибка сохранения коллекции альбомов: %w", err)
	}

	r.albums = updated
	r.nextID++

	log.Printf("[AlbumRepo] Альбом '%s' успешно создан с ID %d", created.Title, created.ID)
	return created.ID, nil
}

// UpdateAlbum частично обновляет альбом: меняются только поля, явно
// присутствующие во входных данных. Возвращает обновленный альбом
// или ErrAlbumNotFound.
func (r *fileAlbumRepository) UpdateAlbum(_ context.Context, id int64, input *models.AlbumInput) (*models.Album, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	idx := -1
	for i := range r.albums {
		if r.albums[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Printf("[AlbumRepo] Альбом с ID %d не найден", id)
		return nil, ErrAlbumNotFound
	}

	updated := make([]models.Album, len(r.albums))
	copy(updated, r.albums)
	input.Apply(&updated[idx])

	if err := r.store.Save(albumsCollection, updated); err != nil {
		log.Printf("[AlbumRepo] Ошибка сохранения коллекции альбомов: %v", err)
		return nil, fmt.Errorf("ошибка сохранения коллекции альбомов: %w", err)
	}

	r.albums = updated
	album := updated[idx]

	log.Printf("[AlbumRepo] Альбом с ID %d успешно обновлен", id)
	return &album, nil
}

// DeleteAlbum удаляет первый альбом с указанным идентификатором и сохраняет
// коллекцию на диск. Возвращает ErrAlbumNotFound, если альбома нет.
func (r *fileAlbumRepository) DeleteAlbum(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return err
	}

	idx := -1
	for i := range r.albums {
		if r.albums[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Printf("[AlbumRepo] Альбом с ID %d не найден", id)
		return ErrAlbumNotFound
	}

	updated := make([]models.Album, 0, len(r.albums)-1)
	updated = append(updated, r.albums[:idx]...)
	updated = append(updated, r.albums[idx+1:]...)

	if err := r.store.Save(albumsCollection, updated); err != nil {
		log.Printf("[AlbumRepo] Ошибка сохранения коллекции альбомов: %v", err)
		return fmt.Errorf("ошибка сохранения коллекции альбомов: %w", err)
	}

	r.albums = updated

	log.Printf("[AlbumRepo] Альбом с ID %d успешно удален", id)
	return nil
}

// ErrAlbumNotFound возвращается, когда альбом с указанным ID отсутствует в коллекции.
var ErrAlbumNotFound = errors.New("альбом не найден")
