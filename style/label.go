package style

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/model"
)

// Label composes the default multi-line node label: the step label, the
// system in brackets, and the SLA marker. Each line appears only when its
// field is present; the fields are independent.
func Label(step *model.Step) string {
	parts := []string{step.Label}
	if step.SystemUsed != "" {
		parts = append(parts, "["+step.SystemUsed+"]")
	}
	if step.SLA != "" {
		parts = append(parts, constants.SLAMarkerPrefix+step.SLA)
	}
	return strings.Join(parts, "\n")
}

// LabelTemplate renders node labels from a user-supplied template instead
// of the default composition. The template sees label, system, sla, lane
// and id.
type LabelTemplate struct {
	tpl *pongo2.Template
}

// NewLabelTemplate compiles a label template.
func NewLabelTemplate(src string) (*LabelTemplate, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, err
	}
	return &LabelTemplate{tpl: tpl}, nil
}

// Render evaluates the template for one step.
func (t *LabelTemplate) Render(step *model.Step) (string, error) {
	return t.tpl.Execute(pongo2.Context{
		"label":  step.Label,
		"system": step.SystemUsed,
		"sla":    step.SLA,
		"lane":   step.Lane,
		"id":     step.ID,
	})
}
