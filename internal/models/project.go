package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultProjectColor = "#4CAF50"
	DefaultColumnColor  = "#5e6c84"
)

type Project struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Color       string     `json:"color" db:"color"`
	Position    int        `json:"position" db:"position"`
	Archived    bool       `json:"archived" db:"archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Column struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ProjectID  uuid.UUID  `json:"project_id" db:"project_id"`
	Title      string     `json:"title" db:"title"`
	Color      string     `json:"color" db:"color"`
	Position   int        `json:"position" db:"position"`
	Archived   bool       `json:"archived" db:"archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// стартовая доска нового пользователя
const (
	DefaultBoardTitle       = "Моя первая доска"
	DefaultBoardDescription = "Добро пожаловать в ProjectFlow!"
	DefaultBoardColor       = "#026aa7"
)

type ColumnTemplate struct {
	Title string
	Color string
}

var DefaultBoardColumns = []ColumnTemplate{
	{Title: "К выполнению", Color: "#eb5a46"},
	{Title: "В процессе", Color: "#ff9f1a"},
	{Title: "На проверке", Color: "#f2d600"},
	{Title: "Готово", Color: "#61bd4f"},
}
