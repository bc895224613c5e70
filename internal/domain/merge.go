package domain

import (
	"sort"
	"strconv"
	"strings"
)

// RemoteIDPrefix é o prefixo dos ids atribuídos a linhas remotas sem id
const RemoteIDPrefix = "r"

// Merge combina os registros locais com a lista remota. Registros com o
// mesmo id são sobrepostos campo a campo (o remoto vence, campos ausentes no
// remoto são mantidos), ids novos são acrescentados e o resultado é ordenado
// por created_at decrescente.
func Merge(local []WeeklyRecord, remote []RawRecord) []WeeklyRecord {
	order := make([]string, 0, len(local)+len(remote))
	byID := make(map[string]RawRecord, len(local)+len(remote))

	for _, record := range local {
		if _, exists := byID[record.ID]; !exists {
			order = append(order, record.ID)
		}
		byID[record.ID] = record.ToRaw()
	}

	for i, row := range remote {
		canonical := Canonicalize(row)
		id := strings.TrimSpace(ToText(canonical["id"]))
		if id == "" {
			id = RemoteIDPrefix + strconv.Itoa(i)
		}
		canonical["id"] = id

		current, exists := byID[id]
		if !exists {
			order = append(order, id)
			byID[id] = canonical
			continue
		}
		for key, value := range canonical {
			current[key] = value
		}
	}

	merged := make([]WeeklyRecord, 0, len(order))
	for _, id := range order {
		merged = append(merged, Normalize(byID[id]))
	}

	SortByCreatedAtDesc(merged)

	return merged
}

// SortByCreatedAtDesc ordena por created_at decrescente, comparando as strings
func SortByCreatedAtDesc(records []WeeklyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
}
