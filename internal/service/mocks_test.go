package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"projectFlow/internal/blobstore"
	"projectFlow/internal/credentials"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"
	"projectFlow/internal/repository/inmemory"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *models.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *models.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListAllByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *MockTaskRepository) MaxPosition(ctx context.Context, columnID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

var _ repository.TaskRepository = (*MockTaskRepository)(nil)

// mockStore подменяет репозиторий задач, остальное берётся из вложенного хранилища.
// Подмена сохраняется и внутри транзакции.
type mockStore struct {
	repository.Store
	tasks repository.TaskRepository
}

func (s mockStore) Tasks() repository.TaskRepository {
	return s.tasks
}

func (s mockStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return s.Store.InTx(ctx, func(st repository.Store) error {
		return fn(mockStore{Store: st, tasks: s.tasks})
	})
}

// fakeScheduler копит отложенные вызовы до явного Fire
type fakeScheduler struct {
	mtx    sync.Mutex
	delays []time.Duration
	jobs   []*fakeJob
}

type fakeJob struct {
	fn       func()
	canceled bool
	fired    bool
}

func (f *fakeScheduler) Schedule(delay time.Duration, fn func()) func() {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	job := &fakeJob{fn: fn}
	f.delays = append(f.delays, delay)
	f.jobs = append(f.jobs, job)
	return func() {
		f.mtx.Lock()
		defer f.mtx.Unlock()
		job.canceled = true
	}
}

// Fire выполняет все несработавшие и неотменённые вызовы, возвращает их число
func (f *fakeScheduler) Fire() int {
	f.mtx.Lock()
	var ready []*fakeJob
	for _, job := range f.jobs {
		if !job.canceled && !job.fired {
			job.fired = true
			ready = append(ready, job)
		}
	}
	f.mtx.Unlock()

	for _, job := range ready {
		job.fn()
	}
	return len(ready)
}

// testEnv - сервисы поверх хранилища в памяти и файлов в afero.MemMapFs
type testEnv struct {
	ctx   context.Context
	store *inmemory.Storage
	fs    afero.Fs
	blobs *blobstore.Store
	sched *fakeScheduler
	svc   *service.Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := inmemory.New()
	fs := afero.NewMemMapFs()
	blobs := blobstore.New(fs, "/attachments")
	sched := &fakeScheduler{}

	return &testEnv{
		ctx:   context.Background(),
		store: store,
		fs:    fs,
		blobs: blobs,
		sched: sched,
		svc: service.New(store, blobs, credentials.NewHasher(bcrypt.MinCost),
			service.NewAutomationService(sched)),
	}
}

func (e *testEnv) session(t *testing.T) service.Session {
	t.Helper()
	session, err := e.svc.Users.Register(e.ctx, "user_"+uuid.NewString()[:8], "secret1", "")
	require.NoError(t, err)
	return session
}

func (e *testEnv) project(t *testing.T, session service.Session) *models.Project {
	t.Helper()
	project, err := e.svc.Projects.CreateProject(e.ctx, session, "Проект", "")
	require.NoError(t, err)
	return project
}

func (e *testEnv) column(t *testing.T, projectID uuid.UUID, title string) *models.Column {
	t.Helper()
	column, err := e.svc.Columns.CreateColumn(e.ctx, projectID, title, "")
	require.NoError(t, err)
	return column
}

func (e *testEnv) task(t *testing.T, columnID uuid.UUID, title string, opts ...models.TaskOption) *models.Task {
	t.Helper()
	task, err := e.svc.Tasks.CreateTask(e.ctx, columnID, title, "", opts...)
	require.NoError(t, err)
	return task
}

// board - пользователь, проект и одна колонка
func (e *testEnv) board(t *testing.T) (*models.Project, *models.Column) {
	t.Helper()
	project := e.project(t, e.session(t))
	return project, e.column(t, project.ID, "К выполнению")
}
