package status

import (
	"html/template"
	"strings"
)

// Variant is the presentation class of a free-text status.
type Variant string

const (
	Default Variant = "default"
	Success Variant = "success"
	Warning Variant = "warning"
	Error   Variant = "error"
	Info    Variant = "info"
)

type rule struct {
	variant  Variant
	keywords []string
}

// Evaluated in order; the first rule with a matching keyword wins.
var rules = []rule{
	{Success, []string{"active", "approved", "ok", "success", "paid"}},
	{Warning, []string{"warning", "pending", "low"}},
	{Error, []string{"critical", "error", "expired", "overused", "depleted"}},
	{Info, []string{"info", "notice"}},
}

// Classify maps a status label to a Variant by case-insensitive substring match.
func Classify(label string) Variant {
	lower := strings.ToLower(label)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.variant
			}
		}
	}
	return Default
}

// Badge renders the label as an escaped badge span carrying its variant class.
func Badge(label string) template.HTML {
	return BadgeAs(label, Classify(label))
}

func BadgeAs(label string, v Variant) template.HTML {
	return template.HTML(`<span class="badge badge-` + string(v) + `">` + template.HTMLEscapeString(label) + `</span>`)
}
