package domain

// Palette são as cores atribuídas aos comerciais, na ordem da equipe
var Palette = []string{"#E1A624", "#317AC1", "#384454", "#D4D3DC", "#AD956B"}

// ColorsByRep associa cada comercial a uma cor da paleta, repetindo-a
// quando há mais comerciais que cores
func ColorsByRep(reps []string) map[string]string {
	colors := make(map[string]string, len(reps))
	next := 0
	for _, rep := range reps {
		if _, ok := colors[rep]; ok {
			continue
		}
		colors[rep] = Palette[next%len(Palette)]
		next++
	}
	return colors
}
