package table

import (
	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Contract lists the columns an extraction result must carry for one source.
type Contract struct {
	Kind     string
	Source   string
	Required []string
}

// Check returns a *errors.SchemaDriftError naming every required column the
// table lacks, or nil.
func (c Contract) Check(t *Table) error {
	if missing := t.Missing(c.Required); len(missing) > 0 {
		return errors.NewSchemaDriftError(c.Kind, c.Source, missing)
	}
	return nil
}
