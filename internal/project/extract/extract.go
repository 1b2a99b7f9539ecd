// Package extract turns the raw samples held by a project backend into the
// table the export step expects for a source.
package extract

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/sources"
	"github.com/agentstation/upscalingqc/pkg/table"
)

// Table builds the table of src from its samples.
//
// Rows of well and blocked well sources are limited to the source's well
// names; an empty list keeps every well. Columns are projected to the well
// column, the selectors and the properties. Selector values are replaced by
// their display value when the selector has a coding table.
//
// A requested column that no sample carries is left out, so the export
// contract reports it.
func Table(src sources.Source, samples []table.Row) *table.Table {
	var columns []string
	var wells []string
	if ws, ok := src.(sources.WellScoped); ok {
		columns = append(columns, constants.WellColumn)
		wells = ws.WellNames()
	}
	columns = append(columns, src.SelectorFields().IDs()...)
	columns = append(columns, src.PropertyFields().IDs()...)

	present := make(map[string]bool)
	for _, s := range samples {
		for k := range s {
			present[k] = true
		}
	}

	out := table.New()
	for _, c := range columns {
		if len(samples) == 0 || present[c] {
			out.AddColumn(c)
		}
	}

	selectors := src.SelectorFields()
	for _, s := range samples {
		if len(wells) > 0 && !slices.Contains(wells, s[constants.WellColumn]) {
			continue
		}
		row := make(table.Row, len(out.Columns))
		for _, c := range out.Columns {
			v, ok := s[c]
			if !ok {
				continue
			}
			if cfg, ok := selectors.Config(c); ok && cfg.HasCodes() {
				if display, ok := cfg.Codes.Lookup(v); ok {
					v = display
				}
			}
			row[c] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Format renders a decoded sample value as a table cell.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// Rows converts decoded samples to table rows.
func Rows(samples []map[string]any) []table.Row {
	rows := make([]table.Row, 0, len(samples))
	for _, s := range samples {
		row := make(table.Row, len(s))
		for k, v := range s {
			row[k] = Format(v)
		}
		rows = append(rows, row)
	}
	return rows
}
