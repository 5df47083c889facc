package tui

import (
	"hash/fnv"
	"strings"

	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/muesli/termenv"
)

// typeColors gives the classic domain types stable, distinct colours.
var typeColors = map[string]string{
	"KS":  "#f87171",
	"AT":  "#fb923c",
	"DH":  "#facc15",
	"ER":  "#a3e635",
	"KR":  "#34d399",
	"ACP": "#22d3ee",
	"T":   "#22d3ee",
	"TE":  "#60a5fa",
	"TR":  "#818cf8",
	"R":   "#818cf8",
	"MT":  "#c084fc",
	"SAT": "#f472b6",
	"PT":  "#e879f9",
	"C":   "#94a3b8",
	"A":   "#fbbf24",
}

var fallbackColors = []string{"#fda4af", "#fdba74", "#bef264", "#67e8f9", "#a5b4fc", "#f0abfc"}

func colorFor(typ string) string {
	if c, ok := typeColors[typ]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(typ))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}

// Architecture renders the domain types of seq joined by hyphens, each
// coloured by type for profile p.
func Architecture(p termenv.Profile, seq *domain.Sequence) string {
	parts := make([]string, len(seq.Domains))
	for i, d := range seq.Domains {
		parts[i] = p.String(d.Type).Foreground(p.Color(colorFor(d.Type))).Bold().String()
	}
	return strings.Join(parts, "-")
}
