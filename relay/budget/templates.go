package budget

// TemplateSection is one section of a handbook chapter template. Only the
// required sections count toward the token budget; optional ones are offered
// in the editor but not assumed present.
type TemplateSection struct {
	Title    string `json:"title"`
	Required bool   `json:"required"`
}

// Template is a named chapter layout teachers can pick when creating a
// handbook.
type Template struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Sections []TemplateSection `json:"sections"`
}

// Templates is the registry of built-in chapter templates, keyed by id.
var Templates = map[string]Template{
	"compact": {
		ID:   "compact",
		Name: "Compact",
		Sections: []TemplateSection{
			{Title: "Introductie", Required: true},
			{Title: "Uitleg", Required: true},
			{Title: "Samenvatting", Required: true},
		},
	},
	"standaard": {
		ID:   "standaard",
		Name: "Standaard",
		Sections: []TemplateSection{
			{Title: "Introductie", Required: true},
			{Title: "Kernbegrippen", Required: true},
			{Title: "Uitleg", Required: true},
			{Title: "Voorbeelden", Required: true},
			{Title: "Samenvatting", Required: true},
			{Title: "Verdieping", Required: false},
			{Title: "Opdrachten", Required: false},
		},
	},
	"uitgebreid": {
		ID:   "uitgebreid",
		Name: "Uitgebreid",
		Sections: []TemplateSection{
			{Title: "Introductie", Required: true},
			{Title: "Leerdoelen", Required: true},
			{Title: "Voorkennis", Required: true},
			{Title: "Kernbegrippen", Required: true},
			{Title: "Uitleg", Required: true},
			{Title: "Voorbeelden", Required: true},
			{Title: "Opdrachten", Required: true},
			{Title: "Samenvatting", Required: true},
			{Title: "Bronnen", Required: false},
		},
	},
}

// RequiredSectionCount returns the number of required sections for a template
// id, or 0 when the template is unknown.
func RequiredSectionCount(templateID string) int {
	tpl, ok := Templates[templateID]
	if !ok {
		return 0
	}
	n := 0
	for _, s := range tpl.Sections {
		if s.Required {
			n++
		}
	}
	return n
}
