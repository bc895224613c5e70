package utils

import "time"

// ParseDate interpreta datas no formato AAAA-MM-DD.
// Uma string vazia devolve a data atual em UTC.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now().UTC(), nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, err
	}

	return date, nil
}
