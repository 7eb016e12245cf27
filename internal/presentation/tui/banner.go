package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wayfinder banner with a green-to-purple gradient.
func PrintBanner(w io.Writer, version string) {
	o := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{`  __      __              _____.__            .___`, "#22c55e"},
		{` /  \    /  \_____  ___.__/ ____\__| ____    __| _/___________`, "#14b8a6"},
		{` \   \/\/   /\__  \<   |  \   __\|  |/    \  / __ |/ __ \_  __ \`, "#06b6d4"},
		{`  \        /  / __ \\___  ||  |  |  |   |  \/ /_/ \  ___/|  | \/`, "#3b82f6"},
		{`   \__/\  /  (____  / ____||__|  |__|___|  /\____ |\___  >__|`, "#6366f1"},
		{`        \/        \/\/                   \/      \/    \/`, "#a855f7"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w, o.String("  maze editor and path finder "+version).Faint())
	fmt.Fprintln(w)
}
