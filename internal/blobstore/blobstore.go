package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"projectFlow/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var ErrInvalidKey = errors.New("некорректный ключ файла")

// Store хранит файлы вложений в каталоге root файловой системы fs
type Store struct {
	fs   afero.Fs
	root string
}

func New(fsys afero.Fs, root string) *Store {
	return &Store{fs: fsys, root: root}
}

// NewOS - каталог на диске, создаётся при необходимости
func NewOS(root string) (*Store, error) {
	fsys := afero.NewOsFs()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога вложений %s: %w", root, err)
	}
	return New(fsys, root), nil
}

// resolve не даёт ключу выйти за пределы root
func (s *Store) resolve(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *Store) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.resolve(key)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return 0, fmt.Errorf("создание каталога: %w", err)
	}

	f, err := s.fs.Create(p)
	if err != nil {
		return 0, fmt.Errorf("создание файла: %w", err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(p)
		return 0, fmt.Errorf("запись файла: %w", err)
	}

	logger.Debug("Blobstore: Файл сохранён", zap.String("key", key), zap.Int64("bytes", n))
	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("открытие файла: %w", err)
	}
	return f, nil
}

// Delete для отсутствующего файла не ошибка; пустой каталог задачи тоже удаляется
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("удаление файла: %w", err)
	}

	dir := filepath.Dir(p)
	if dir != filepath.Clean(s.root) {
		if empty, err := afero.IsEmpty(s.fs, dir); err == nil && empty {
			_ = s.fs.Remove(dir)
		}
	}
	return nil
}

func (s *Store) Exists(key string) (bool, error) {
	p, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, p)
}
