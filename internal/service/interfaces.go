package service

import (
	"context"
	"io"
	"time"
)

// BlobStore хранит содержимое вложений по ключу
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
	// NeedsRehash - хеш устаревшего формата, при входе его стоит пересчитать
	NeedsRehash(hash string) bool
}

// Scheduler откладывает выполнение fn, cancel отменяет ещё не сработавший вызов
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}
