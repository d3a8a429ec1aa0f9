package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/vlados-13/api/internal/models"
)

// Имя коллекции пользователей (файл users.json в каталоге данных).
const usersCollection = "users"

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// fileUserRepository реализует UserRepository поверх JSON-файла.
// Коллекция целиком живет в памяти; один мьютекс на коллекцию гарантирует,
// что каждая операция "загрузить-проверить-изменить-сохранить" выполняется
// атомарно относительно других операций над пользователями.
type fileUserRepository struct {
	store *FileStore

	mu     sync.Mutex
	users  []models.User
	nextID int64
	loaded bool
}

// NewFileUserRepository создает новый экземпляр репозитория пользователей
// поверх файлового хранилища.
func NewFileUserRepository(store *FileStore) UserRepository {
	return &fileUserRepository{store: store}
}

// ensureLoaded лениво загружает коллекцию из файла при первом обращении.
// Вызывается только под блокировкой.
func (r *fileUserRepository) ensureLoaded() error {
	if r.loaded {
		return nil
	}

	if err := r.store.Load(usersCollection, &r.users); err != nil {
		return fmt.Errorf("ошибка загрузки коллекции пользователей: %w", err)
	}

	// Счетчик идентификаторов монотонный: стартует с max(id)+1,
	// чтобы не выдавать уже занятые идентификаторы.
	r.nextID = 1
	for i := range r.users {
		if r.users[i].ID >= r.nextID {
			r.nextID = r.users[i].ID + 1
		}
	}

	r.loaded = true
	log.Printf("[UserRepo] Загружено пользователей: %d", len(r.users))
	return nil
}

// CreateUser добавляет нового пользователя и сохраняет коллекцию на диск.
// Возвращает ID созданного пользователя или ошибку.
func (r *fileUserRepository) CreateUser(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return 0, err
	}

	// Уникальность email: точное сравнение с учетом регистра
	for i := range r.users {
		if r.users[i].Email == user.Email {
			log.Printf("[UserRepo] Ошибка создания пользователя: email '%s' уже занят", user.Email)
			return 0, ErrEmailTaken
		}
	}

	created := *user
	created.ID = r.nextID

	// Сначала сохраняем новую коллекцию, и только при успехе подменяем
	// состояние в памяти: память и диск не расходятся при сбое записи.
	updated := append(append([]models.User(nil), r.users...), created)
	if err := r.store.Save(usersCollection, updated); err != nil {
		log.Printf("[UserRepo] Ошибка сохранения коллекции пользователей: %v", err)
		return 0, fmt.Errorf("ошибка сохранения коллекции пользователей: %w", err)
	}

	r.users = updated
	r.nextID++

	log.Printf("[UserRepo] Пользователь '%s' успешно создан с ID %d", created.Email, created.ID)
	return created.ID, nil
}

// GetUserByEmail находит пользователя по email (точное совпадение с учетом регистра).
// Возвращает пользователя или ErrUserNotFound.
func (r *fileUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}

	log.Printf("[UserRepo] Пользователь с email '%s' не найден", email)
	return nil, ErrUserNotFound
}

// Кастомные ошибки репозитория.
var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrEmailTaken   = errors.New("пользователь с таким email уже существует")
)
