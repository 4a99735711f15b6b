package service_test

import (
	"testing"

	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemberService_InviteMember тестирует приглашение участников
func TestMemberService_InviteMember(t *testing.T) {
	env := newTestEnv(t)
	project := env.project(t, env.session(t))

	archived := env.project(t, env.session(t))
	_, err := env.svc.Projects.ArchiveProject(env.ctx, archived.ID)
	require.NoError(t, err)

	tests := []struct {
		name          string
		projectID     uuid.UUID
		email         string
		role          models.MemberRole
		expectedCode  string
		expectedEmail string
		expectedRole  models.MemberRole
	}{
		{
			name:          "success - domain appended",
			projectID:     project.ID,
			email:         "bob",
			role:          models.RoleAdmin,
			expectedEmail: "bob@projectflow.com",
			expectedRole:  models.RoleAdmin,
		},
		{
			name:          "success - default role",
			projectID:     project.ID,
			email:         "carol@example.com",
			expectedEmail: "carol@example.com",
			expectedRole:  models.RoleMember,
		},
		{
			name:         "error - duplicate email ignoring case",
			projectID:    project.ID,
			email:        "BOB@projectflow.com",
			expectedCode: service.CodeDuplicate,
		},
		{
			name:         "error - empty email",
			projectID:    project.ID,
			email:        "  ",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - unknown role",
			projectID:    project.ID,
			email:        "dan",
			role:         "Гость",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - archived project",
			projectID:    archived.ID,
			email:        "dan",
			expectedCode: service.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, err := env.svc.Members.InviteMember(env.ctx, tt.projectID, tt.email, tt.role)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, service.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedEmail, member.Email)
			assert.Equal(t, tt.expectedRole, member.Role)
			assert.Equal(t, models.MemberPending, member.Status)
		})
	}
}

// TestMemberService_Lifecycle тестирует активацию, смену роли и исключение
func TestMemberService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	project := env.project(t, env.session(t))

	members, err := env.svc.Members.ListMembers(env.ctx, project.ID)
	require.NoError(t, err)
	owner := members[0]

	member, err := env.svc.Members.InviteMember(env.ctx, project.ID, "bob", "")
	require.NoError(t, err)

	activated, err := env.svc.Members.ActivateMember(env.ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MemberActive, activated.Status)

	changed, err := env.svc.Members.ChangeRole(env.ctx, member.ID, models.RoleObserver)
	require.NoError(t, err)
	assert.Equal(t, models.RoleObserver, changed.Role)

	_, err = env.svc.Members.ChangeRole(env.ctx, owner.ID, models.RoleAdmin)
	assert.Equal(t, service.CodeInvalidState, service.CodeOf(err))

	err = env.svc.Members.RemoveMember(env.ctx, owner.ID)
	assert.Equal(t, service.CodeInvalidState, service.CodeOf(err))

	require.NoError(t, env.svc.Members.RemoveMember(env.ctx, member.ID))
	err = env.svc.Members.RemoveMember(env.ctx, member.ID)
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

// TestFilterMembers тестирует поиск участников
func TestFilterMembers(t *testing.T) {
	members := []*models.ProjectMember{
		{Username: "alice", Email: "alice@projectflow.local", Role: models.RoleOwner, Status: models.MemberActive},
		{Username: "bob", Email: "bob@example.com", Role: models.RoleAdmin, Status: models.MemberPending},
		{Username: "carol", Email: "carol@projectflow.com", Role: models.RoleObserver, Status: models.MemberActive},
	}

	tests := []struct {
		name     string
		search   string
		expected int
	}{
		{name: "success - empty search returns all", search: "", expected: 3},
		{name: "success - by username", search: "BOB", expected: 1},
		{name: "success - by email domain", search: "projectflow", expected: 2},
		{name: "success - by role", search: "наблюдатель", expected: 1},
		{name: "success - nothing found", search: "zzz", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, service.FilterMembers(members, tt.search), tt.expected)
		})
	}

	stats := service.ComputeMemberStats(members)
	assert.Equal(t, service.MemberStats{Total: 3, Active: 2, Pending: 1, Owner: "alice"}, stats)
	assert.Equal(t, "Неизвестно", service.ComputeMemberStats(nil).Owner)
}
