package models

import "strings"

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

type PriorityInfo struct {
	Label     string
	Color     string
	TextColor string
}

var priorityTable = map[Priority]PriorityInfo{
	PriorityLow:      {Label: "НИЗКИЙ", Color: "#61bd4f", TextColor: "#ffffff"},
	PriorityMedium:   {Label: "СРЕДНИЙ", Color: "#f2d600", TextColor: "#172b4d"},
	PriorityHigh:     {Label: "ВЫСОКИЙ", Color: "#ff9f1a", TextColor: "#ffffff"},
	PriorityCritical: {Label: "КРИТИЧЕСКИЙ", Color: "#eb5a46", TextColor: "#ffffff"},
}

func (p Priority) Valid() bool {
	_, ok := priorityTable[p]
	return ok
}

// Info для неизвестного значения отдаёт оформление MEDIUM
func (p Priority) Info() PriorityInfo {
	if info, ok := priorityTable[p]; ok {
		return info
	}
	return priorityTable[PriorityMedium]
}

// ParsePriority принимает значение в любом регистре, пустая строка - MEDIUM
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityMedium, true
	}
	p := Priority(strings.ToUpper(s))
	if !p.Valid() {
		return PriorityMedium, false
	}
	return p, true
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}
