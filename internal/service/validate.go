package service

import (
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateTitle(field, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewValidationError(field, "не может быть пустым")
	}
	return title, nil
}

// colorOrDefault: пустой цвет заменяется на def, остальные должны быть в формате #RRGGBB
func colorOrDefault(color, def string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return def, nil
	}
	if !hexColor.MatchString(color) {
		return "", NewValidationError("color", "ожидается формат #RRGGBB")
	}
	return color, nil
}
