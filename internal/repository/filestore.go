package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	dataDirPerm  = 0o755
	dataFilePerm = 0o644
)

// FileStore сохраняет именованные коллекции в JSON-файлы каталога данных.
// Каждая коллекция - один файл <dir>/<name>.json, который целиком читается
// при загрузке и целиком переписывается при каждом сохранении.
type FileStore struct {
	dir string
}

// NewFileStore создает новый экземпляр хранилища с указанным каталогом данных.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load читает коллекцию name в dst (указатель на срез).
// Если файла нет, dst остается пустым и ошибка не возвращается.
func (fs *FileStore) Load(name string, dst any) error {
	path := fs.path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		// ENOTDIR означает то же, что и ENOENT: файла по этому пути нет
		// (какое-то из звеньев пути не каталог)
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			log.Printf("[FileStore] Файл '%s' отсутствует, коллекция считается пустой", path)
			return nil
		}
		return fmt.Errorf("ошибка чтения файла '%s': %w", path, err)
	}

	if err = json.Unmarshal(data, dst); err != nil {
		log.Printf("[FileStore] Файл '%s' содержит некорректный JSON: %v", path, err)
		return fmt.Errorf("%w: файл '%s': %v", ErrCorruptData, path, err)
	}

	return nil
}

// Save сериализует коллекцию и переписывает файл целиком.
// Запись идет во временный файл с последующим переименованием, чтобы при
// сбое на середине записи старое содержимое осталось нетронутым.
func (fs *FileStore) Save(name string, src any) error {
	if err := os.MkdirAll(fs.dir, dataDirPerm); err != nil {
		return fmt.Errorf("ошибка создания каталога данных '%s': %w", fs.dir, err)
	}

	// Как в исходных данных: отступ в 4 пробела, не-ASCII символы и URL
	// записываются как есть.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(src); err != nil {
		return fmt.Errorf("ошибка сериализации коллекции '%s': %w", name, err)
	}

	path := fs.path(name)
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())

	if err := os.WriteFile(tmpPath, buf.Bytes(), dataFilePerm); err != nil {
		return fmt.Errorf("ошибка записи файла '%s': %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		// Убираем временный файл, чтобы не засорять каталог
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			log.Printf("[FileStore] Не удалось удалить временный файл '%s': %v", tmpPath, rmErr)
		}
		return fmt.Errorf("ошибка переименования '%s' в '%s': %w", tmpPath, path, err)
	}

	return nil
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name+".json")
}

// ErrCorruptData возвращается, когда файл коллекции существует,
// но не является корректным JSON.
var ErrCorruptData = errors.New("файл данных поврежден")
