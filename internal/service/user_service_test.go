package service_test

import (
	"context"
	"strings"
	"testing"

	"projectFlow/internal/credentials"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestUserService_Register тестирует регистрацию
func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Users.Register(env.ctx, "taken", "secret1", "taken@example.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		password      string
		email         string
		expectedCode  string
		expectedEmail string
	}{
		{
			name:          "success - email generated from username",
			username:      "alice",
			password:      "secret1",
			expectedEmail: "alice@projectflow.local",
		},
		{
			name:          "success - explicit email kept",
			username:      "bob",
			password:      "secret1",
			email:         " bob@example.com ",
			expectedEmail: "bob@example.com",
		},
		{
			name:         "error - short username",
			username:     "al",
			password:     "secret1",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - short password",
			username:     "carol",
			password:     "12345",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - password longer than 72 bytes",
			username:     "erin",
			password:     strings.Repeat("p", 80),
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - username taken",
			username:     "taken",
			password:     "secret1",
			expectedCode: service.CodeDuplicate,
		},
		{
			name:         "error - email taken",
			username:     "dave",
			password:     "secret1",
			email:        "TAKEN@example.com",
			expectedCode: service.CodeDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := env.svc.Users.Register(env.ctx, tt.username, tt.password, tt.email)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, service.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, session.UserID())
			assert.Equal(t, tt.username, session.User.Username)
			assert.Equal(t, tt.expectedEmail, session.User.Email)
			assert.NotEqual(t, tt.password, session.User.PasswordHash)
		})
	}
}

// TestUserService_GeneratedEmailCollision тестирует запасной адрес при занятом сгенерированном
func TestUserService_GeneratedEmailCollision(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Users.Register(env.ctx, "first", "secret1", "alice@projectflow.local")
	require.NoError(t, err)

	session, err := env.svc.Users.Register(env.ctx, "alice", "secret1", "")
	require.NoError(t, err)
	assert.NotEqual(t, "alice@projectflow.local", session.User.Email)
	assert.Contains(t, session.User.Email, "@projectflow.local")
}

// TestUserService_Login тестирует вход
func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	registered, err := env.svc.Users.Register(env.ctx, "alice", "secret1", "")
	require.NoError(t, err)

	tests := []struct {
		name         string
		username     string
		password     string
		expectedCode string
	}{
		{name: "success - valid credentials", username: "alice", password: "secret1"},
		{name: "error - wrong password", username: "alice", password: "secret2", expectedCode: service.CodeInvalidCredentials},
		{name: "error - unknown user", username: "nobody", password: "secret1", expectedCode: service.CodeNotFound},
		{name: "error - empty username", username: " ", password: "secret1", expectedCode: service.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := env.svc.Users.Login(env.ctx, tt.username, tt.password)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, service.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.UserID(), session.UserID())
		})
	}
}

// TestUserService_LegacyHashUpgrade тестирует пересчёт старого хеша при входе
func TestUserService_LegacyHashUpgrade(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{
		ID:           uuid.New(),
		Username:     "legacy",
		Email:        "legacy@projectflow.local",
		PasswordHash: credentials.LegacyHash("secret1"),
	}
	require.NoError(t, env.store.Users().Create(env.ctx, user))

	_, err := env.svc.Users.Login(env.ctx, "legacy", "secret1")
	require.NoError(t, err)

	stored, err := env.store.Users().GetByID(env.ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, credentials.LegacyHash("secret1"), stored.PasswordHash)

	_, err = env.svc.Users.Login(env.ctx, "legacy", "secret1")
	assert.NoError(t, err)
}

// TestUserService_ChangePassword тестирует смену пароля
func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	session, err := env.svc.Users.Register(env.ctx, "alice", "secret1", "")
	require.NoError(t, err)

	err = env.svc.Users.ChangePassword(env.ctx, session, "wrong-old", "secret2")
	assert.Equal(t, service.CodeInvalidCredentials, service.CodeOf(err))

	err = env.svc.Users.ChangePassword(env.ctx, session, "secret1", "123")
	assert.Equal(t, service.CodeValidation, service.CodeOf(err))

	err = env.svc.Users.ChangePassword(env.ctx, session, "secret1", strings.Repeat("я", 40))
	assert.Equal(t, service.CodeValidation, service.CodeOf(err))

	err = env.svc.Users.ChangePassword(env.ctx, service.Session{}, "secret1", "secret2")
	assert.Equal(t, service.CodeValidation, service.CodeOf(err))

	require.NoError(t, env.svc.Users.ChangePassword(env.ctx, session, "secret1", "secret2"))

	_, err = env.svc.Users.Login(env.ctx, "alice", "secret1")
	assert.Equal(t, service.CodeInvalidCredentials, service.CodeOf(err))
	_, err = env.svc.Users.Login(env.ctx, "alice", "secret2")
	assert.NoError(t, err)
}

// TestScenario_ArchiveRestore тестирует путь от регистрации до восстановления задачи из архива
func TestScenario_ArchiveRestore(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.svc.Users.Register(env.ctx, "alice", "secret1", "")
	require.NoError(t, err)

	project, created, err := env.svc.Projects.EnsureDefaultBoard(env.ctx, session)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.DefaultBoardTitle, project.Title)

	columns, err := env.svc.Columns.ListColumns(env.ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 4)
	first := columns[0]

	task, err := env.svc.Tasks.CreateTask(env.ctx, first.ID, "Buy milk", "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)

	_, err = env.svc.Tasks.ArchiveTask(env.ctx, task.ID)
	require.NoError(t, err)

	active, err := env.svc.Tasks.ListTasks(env.ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := env.svc.Tasks.ListArchivedTasks(env.ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, task.ID, archived[0].ID)

	_, err = env.svc.Tasks.RestoreTask(env.ctx, task.ID)
	require.NoError(t, err)

	active, err = env.svc.Tasks.ListTasks(env.ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, task.ID, active[0].ID)
	assert.Equal(t, first.ID, active[0].ColumnID)

	// повторный вход не создаёт вторую стартовую доску
	again, created, err := env.svc.Projects.EnsureDefaultBoard(env.ctx, session)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, project.ID, again.ID)
}

// TestUserService_RegisterInsertConflict тестирует определение занятого поля при конфликте вставки
func TestUserService_RegisterInsertConflict(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Users.Register(env.ctx, "first", "secret1", "shared@example.com")
	require.NoError(t, err)

	store := &racingUserStore{Store: env.store, hideEmail: "shared@example.com"}
	users := service.NewUserService(store, credentials.NewHasher(bcrypt.MinCost))

	_, err = users.Register(env.ctx, "second", "secret1", "shared@example.com")
	require.Equal(t, service.CodeDuplicate, service.CodeOf(err))

	var busErr *service.BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, "email", busErr.Details["field"])
}

// racingUserStore не видит email при проверке, как если бы его заняли между проверкой и вставкой
type racingUserStore struct {
	repository.Store
	hideEmail string
}

func (s *racingUserStore) Users() repository.UserRepository {
	return &racingUsers{UserRepository: s.Store.Users(), hideEmail: s.hideEmail}
}

type racingUsers struct {
	repository.UserRepository
	hideEmail string
}

func (r *racingUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if strings.EqualFold(email, r.hideEmail) {
		return nil, repository.ErrNotFound
	}
	return r.UserRepository.GetByEmail(ctx, email)
}
