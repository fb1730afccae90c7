package pipeline

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-adocbib/internal/logfields"
	"github.com/alnah/go-adocbib/internal/macro"
	"github.com/alnah/go-adocbib/internal/markup"
)

// Inline macro names handled by InlineExpander.
const (
	MacroGitHub   = "github"
	MacroMan      = "man"
	MacroSidenote = "sidenote"
)

const (
	githubFavicon = "https://github.com/favicon.ico"
	linuxFavicon  = "https://www.kernel.org/theme/images/logos/favicon.png"
	faviconSize   = 14
)

// InlineExpander rewrites github:, man: and sidenote: macros into plain
// markup. Sidenote counters are per expander, so use one per document.
type InlineExpander struct {
	syntax  markup.Syntax
	logger  *slog.Logger
	sideRef int
	sideDef int
}

// NewInlineExpander creates an expander writing syntax.
func NewInlineExpander(syntax markup.Syntax, logger *slog.Logger) *InlineExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &InlineExpander{syntax: syntax, logger: logger}
}

// Expand rewrites every supported macro in line.
func (e *InlineExpander) Expand(line string) string {
	matches := macro.ScanInline(line, MacroGitHub, MacroMan, MacroSidenote)
	if len(matches) == 0 {
		return line
	}

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		b.WriteString(line[prev:m.Start])
		b.WriteString(e.expand(m))
		prev = m.End
	}
	b.WriteString(line[prev:])
	return b.String()
}

func (e *InlineExpander) expand(m macro.Inline) string {
	switch m.Name {
	case MacroGitHub:
		text := strings.TrimSpace(m.Attrs)
		if text == "" {
			text = m.Target
		}
		icon := e.syntax.Image(githubFavicon, "GitHub", faviconSize, faviconSize)
		return e.syntax.IconLink("https://github.com/"+m.Target, text, icon)

	case MacroMan:
		section := strings.TrimSpace(m.Attrs)
		if i := strings.IndexByte(section, ','); i >= 0 {
			section = strings.TrimSpace(section[:i])
		}
		if section == "" {
			section = "1"
		}
		url := "https://man7.org/linux/man-pages/man" + section + "/" + m.Target + "." + section + ".html"
		icon := e.syntax.Image(linuxFavicon, "Linux", faviconSize, faviconSize)
		return e.syntax.IconLink(url, m.Target+"("+section+")", icon)

	case MacroSidenote:
		switch m.Target {
		case "ref":
			e.sideRef++
			return e.syntax.Superscript("[" + strconv.Itoa(e.sideRef) + "]")
		case "def":
			e.sideDef++
			return "[" + strconv.Itoa(e.sideDef) + "]:"
		}
		e.logger.Warn("unknown sidenote target, macro left unchanged",
			logfields.Macro(m.Text))
	}
	return m.Text
}
