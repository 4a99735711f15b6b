package models

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string
type MemberStatus string

const (
	RoleOwner    MemberRole = "Владелец"
	RoleAdmin    MemberRole = "Администратор"
	RoleMember   MemberRole = "Участник"
	RoleObserver MemberRole = "Наблюдатель"
)

const (
	MemberActive  MemberStatus = "Активен"
	MemberPending MemberStatus = "Ожидает"
)

// порядок ролей в списке участников
var roleRank = map[MemberRole]int{
	RoleOwner:    0,
	RoleAdmin:    1,
	RoleMember:   2,
	RoleObserver: 3,
}

func (r MemberRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r MemberRole) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return len(roleRank)
}

type ProjectMember struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	ProjectID uuid.UUID    `json:"project_id" db:"project_id"`
	Username  string       `json:"username" db:"username"`
	Email     string       `json:"email" db:"email"`
	Role      MemberRole   `json:"role" db:"role"`
	Status    MemberStatus `json:"status" db:"status"`
	InvitedAt time.Time    `json:"invited_at" db:"invited_at"`
}
