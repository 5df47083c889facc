package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the synthaser banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`                  _   _                        `, "#818cf8"},
		{`  ___ _   _ _ __ | |_| |__   __ _ ___  ___ _ __ `, "#a78bfa"},
		{` / __| | | | '_ \| __| '_ \ / _' / __|/ _ \ '__|`, "#c084fc"},
		{` \__ \ |_| | | | | |_| | | | (_| \__ \  __/ |   `, "#e879f9"},
		{` |___/\__, |_| |_|\__|_| |_|\__,_|___/\___|_|   `, "#f472b6"},
		{`      |___/                                     `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", p.String(version).Faint())
}
