package domain

// SampleRecords devolve os registros de exemplo usados para popular uma base vazia
func SampleRecords() []WeeklyRecord {
	sample := func(id, rep, week string, calls, contacts, emails, meetings, revenue float64, createdAt string) WeeklyRecord {
		return WeeklyRecord{
			ID:            id,
			SchemaVersion: CurrentSchemaVersion,
			Rep:           rep,
			Week:          week,
			Counters: Counters{
				Calls:       calls,
				NewContacts: contacts,
				Emails:      emails,
				Meetings:    meetings,
				RevenueEUR:  revenue,
			},
			Prospects: []string{},
			Quotes:    []string{},
			CreatedAt: createdAt,
		}
	}

	records := []WeeklyRecord{
		sample("s4", "Commercial 1", "2025-W35", 55, 15, 68, 7, 13000, "2025-08-29T16:00:00.000Z"),
		sample("s5", "Commercial 2", "2025-W35", 46, 10, 41, 4, 6500, "2025-08-29T15:00:00.000Z"),
		sample("s6", "Commercial 3", "2025-W35", 38, 6, 29, 4, 5200, "2025-08-29T14:00:00.000Z"),
		sample("s1", "Commercial 1", "2025-W34", 48, 12, 60, 5, 9000, "2025-08-22T16:00:00.000Z"),
		sample("s2", "Commercial 2", "2025-W34", 52, 9, 44, 6, 7000, "2025-08-22T15:00:00.000Z"),
		sample("s3", "Commercial 3", "2025-W34", 31, 7, 30, 3, 4000, "2025-08-22T14:00:00.000Z"),
	}

	return records
}
