package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekLabelPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekLabel devolve a semana ISO-8601 da data no formato AAAA-Www.
// O ano é o da quinta-feira da semana, então 2024-12-30 pertence a 2025-W01.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// CurrentWeek devolve a semana ISO do instante atual do relógio
func CurrentWeek(now func() time.Time) string {
	return WeekLabel(now())
}

// IsWeekLabel indica se o texto é uma semana ISO válida
func IsWeekLabel(label string) bool {
	_, err := ParseWeekLabel(label)
	return err == nil
}

// ParseWeekLabel valida a semana e devolve a segunda-feira correspondente (UTC)
func ParseWeekLabel(label string) (time.Time, error) {
	matches := weekLabelPattern.FindStringSubmatch(label)
	if matches == nil {
		return time.Time{}, fmt.Errorf("semana inválida: %q", label)
	}

	year, _ := strconv.Atoi(matches[1])
	week, _ := strconv.Atoi(matches[2])

	// 4 de janeiro sempre pertence à semana 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)

	if WeekLabel(monday) != label {
		return time.Time{}, fmt.Errorf("semana inexistente: %q", label)
	}

	return monday, nil
}
