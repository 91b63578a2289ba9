package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"      _                 _     ", "#818cf8"},
	{"   __| | ___  ___  __| |___ ", "#a78bfa"},
	{"  / _` |/ _ \\/ _ \\/ _` / __|", "#c084fc"},
	{" | (_| |  __/  __/ (_| \\__ \\", "#e879f9"},
	{"  \\__,_|\\___|\\___|\\__,_|___/", "#f472b6"},
}

// Banner renders the ASCII banner with version under it. Colors follow the
// terminal profile, so the banner is plain text when output is not a TTY.
func Banner(version string) string {
	p := termenv.ColorProfile()

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range bannerLines {
		b.WriteString(termenv.String(l.text).Foreground(p.Color(l.color)).String())
		b.WriteString("\n")
	}
	if v := strings.TrimSpace(version); v != "" {
		b.WriteString(termenv.String(fmt.Sprintf("  v%s", v)).Faint().String())
		b.WriteString("\n")
	}
	return b.String()
}
