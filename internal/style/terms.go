package style

// Terms are the locale-dependent words used when writing names and dates.
type Terms struct {
	And     string `yaml:"and"`
	EtAl    string `yaml:"et-al"`
	Editor  string `yaml:"editor"`
	Editors string `yaml:"editors"`
	NoDate  string `yaml:"no-date"`
	In      string `yaml:"in"`
}

// And modes for the last name in a list.
const (
	AndText   = "text"
	AndSymbol = "symbol"
	AndNone   = "none"
)

var builtinTerms = map[string]Terms{
	"en": {And: "and", EtAl: "et al.", Editor: "ed.", Editors: "eds.", NoDate: "n.d.", In: "In"},
	"de": {And: "und", EtAl: "u. a.", Editor: "Hrsg.", Editors: "Hrsg.", NoDate: "o. J.", In: "In"},
	"fr": {And: "et", EtAl: "et al.", Editor: "éd.", Editors: "éds.", NoDate: "s. d.", In: "Dans"},
	"es": {And: "y", EtAl: "et al.", Editor: "ed.", Editors: "eds.", NoDate: "s. f.", In: "En"},
	"it": {And: "e", EtAl: "et al.", Editor: "a cura di", Editors: "a cura di", NoDate: "s.d.", In: "In"},
	"nl": {And: "en", EtAl: "e.a.", Editor: "red.", Editors: "red.", NoDate: "z.d.", In: "In"},
	"pt": {And: "e", EtAl: "et al.", Editor: "ed.", Editors: "eds.", NoDate: "s.d.", In: "Em"},
}

// merge returns t with the non-empty fields of o applied.
func (t Terms) merge(o Terms) Terms {
	if o.And != "" {
		t.And = o.And
	}
	if o.EtAl != "" {
		t.EtAl = o.EtAl
	}
	if o.Editor != "" {
		t.Editor = o.Editor
	}
	if o.Editors != "" {
		t.Editors = o.Editors
	}
	if o.NoDate != "" {
		t.NoDate = o.NoDate
	}
	if o.In != "" {
		t.In = o.In
	}
	return t
}
