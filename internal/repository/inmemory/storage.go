package inmemory

import (
	"context"
	"maps"
	"sync"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

// Storage хранит копии записей, наружу тоже отдаются копии
type Storage struct {
	mtx   *sync.RWMutex
	txMtx *sync.Mutex

	users       map[uuid.UUID]models.User
	projects    map[uuid.UUID]models.Project
	columns     map[uuid.UUID]models.Column
	tasks       map[uuid.UUID]*models.Task
	labels      map[uuid.UUID]models.Label
	members     map[uuid.UUID]models.ProjectMember
	attachments map[uuid.UUID]models.Attachment
}

var _ repo.Store = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		mtx:         &sync.RWMutex{},
		txMtx:       &sync.Mutex{},
		users:       make(map[uuid.UUID]models.User),
		projects:    make(map[uuid.UUID]models.Project),
		columns:     make(map[uuid.UUID]models.Column),
		tasks:       make(map[uuid.UUID]*models.Task),
		labels:      make(map[uuid.UUID]models.Label),
		members:     make(map[uuid.UUID]models.ProjectMember),
		attachments: make(map[uuid.UUID]models.Attachment),
	}
}

func (s *Storage) Users() repo.UserRepository             { return &UserStorage{s} }
func (s *Storage) Projects() repo.ProjectRepository       { return &ProjectStorage{s} }
func (s *Storage) Columns() repo.ColumnRepository         { return &ColumnStorage{s} }
func (s *Storage) Tasks() repo.TaskRepository             { return &TaskStorage{s} }
func (s *Storage) Labels() repo.LabelRepository           { return &LabelStorage{s} }
func (s *Storage) Members() repo.MemberRepository         { return &MemberStorage{s} }
func (s *Storage) Attachments() repo.AttachmentRepository { return &AttachmentStorage{s} }

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

type snapshot struct {
	users       map[uuid.UUID]models.User
	projects    map[uuid.UUID]models.Project
	columns     map[uuid.UUID]models.Column
	tasks       map[uuid.UUID]*models.Task
	labels      map[uuid.UUID]models.Label
	members     map[uuid.UUID]models.ProjectMember
	attachments map[uuid.UUID]models.Attachment
}

func (s *Storage) snapshot() snapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := make(map[uuid.UUID]*models.Task, len(s.tasks))
	for id, t := range s.tasks {
		tasks[id] = t.Clone()
	}
	return snapshot{
		users:       maps.Clone(s.users),
		projects:    maps.Clone(s.projects),
		columns:     maps.Clone(s.columns),
		tasks:       tasks,
		labels:      maps.Clone(s.labels),
		members:     maps.Clone(s.members),
		attachments: maps.Clone(s.attachments),
	}
}

func (s *Storage) restore(snap snapshot) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.users = snap.users
	s.projects = snap.projects
	s.columns = snap.columns
	s.tasks = snap.tasks
	s.labels = snap.labels
	s.members = snap.members
	s.attachments = snap.attachments
}

// InTx откатывает все изменения хранилища, если fn вернула ошибку.
// Транзакции выполняются по одной.
func (s *Storage) InTx(ctx context.Context, fn func(repo.Store) error) error {
	s.txMtx.Lock()
	defer s.txMtx.Unlock()

	snap := s.snapshot()
	if err := fn(txStorage{s}); err != nil {
		s.restore(snap)
		logger.Warn("Repository: Откат транзакции")
		return err
	}
	return nil
}

// txStorage - хранилище внутри транзакции, вложенный InTx выполняется в той же транзакции
type txStorage struct {
	*Storage
}

func (t txStorage) InTx(ctx context.Context, fn func(repo.Store) error) error {
	return fn(t)
}
