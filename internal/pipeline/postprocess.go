package pipeline

import "strings"

// arrowReplacer restores the ASCII arrows that AsciiDoc's replacements
// substitution turns into entities.
var arrowReplacer = strings.NewReplacer(
	"&#8594;", "->",
	"&#8658;", "=>",
	"&#8656;", "<=",
	"&#8592;", "<-",
)

// UndoReplacements restores ->, =>, <= and <- in rendered HTML.
func UndoReplacements(htmlContent string) string {
	return arrowReplacer.Replace(htmlContent)
}
