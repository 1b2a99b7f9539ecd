package sources

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Payload keys. The names follow the configuration dictionaries used in RMS scripts.
const (
	keyWells        = "wells"
	keyGrid         = "grid"
	keyBlockedWells = "blockedwells"
	keyProperties   = "properties"
	keySelectors    = "selectors"
	keyNames        = "names"
	keyTrajectory   = "trajectory"
	keyLogrun       = "logrun"
	keyBWName       = "bwname"
	keyName         = "name"
	keyCodes        = "codes"
)

// ParseFile reads and parses a configuration payload from a YAML or JSON file.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse builds the source descriptors from a YAML or JSON payload.
// The payload is first decoded into ordered generic values, then walked with
// explicit shape checks: a missing required field, an unknown field, or a value
// of the wrong shape fails with *errors.ConfigShapeError.
func Parse(data []byte) (*Config, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if raw == nil {
		return nil, errors.NewConfigShapeError("", "empty payload")
	}

	top, err := asMapping("", raw)
	if err != nil {
		return nil, err
	}
	if err := checkKeys("", top, []string{keyWells, keyGrid, keyBlockedWells}, []string{keyWells, keyGrid, keyBlockedWells}); err != nil {
		return nil, err
	}

	cfg := &Config{}

	wells, err := asList(keyWells, lookup(top, keyWells))
	if err != nil {
		return nil, err
	}
	if len(wells) == 0 {
		return nil, errors.NewConfigShapeError(keyWells, "at least one well source is required")
	}
	for i, item := range wells {
		src, err := parseWellSource(fmt.Sprintf("%s[%d]", keyWells, i), item)
		if err != nil {
			return nil, err
		}
		cfg.Wells = append(cfg.Wells, src)
	}

	grids, err := asList(keyGrid, lookup(top, keyGrid))
	if err != nil {
		return nil, err
	}
	for i, item := range grids {
		src, err := parseGridSource(fmt.Sprintf("%s[%d]", keyGrid, i), item)
		if err != nil {
			return nil, err
		}
		cfg.Grids = append(cfg.Grids, src)
	}

	bws, err := asList(keyBlockedWells, lookup(top, keyBlockedWells))
	if err != nil {
		return nil, err
	}
	for i, item := range bws {
		src, err := parseBlockedWellSource(fmt.Sprintf("%s[%d]", keyBlockedWells, i), item)
		if err != nil {
			return nil, err
		}
		cfg.BlockedWells = append(cfg.BlockedWells, src)
	}

	return cfg, nil
}

func parseContext(path string, m yaml.MapSlice) (Context, error) {
	props, err := parseFields(join(path, keyProperties), lookup(m, keyProperties))
	if err != nil {
		return Context{}, err
	}
	sels, err := parseFields(join(path, keySelectors), lookup(m, keySelectors))
	if err != nil {
		return Context{}, err
	}
	return Context{Properties: props, Selectors: sels}, nil
}

func parseWellSource(path string, v any) (*WellSource, error) {
	m, err := asMapping(path, v)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(path, m, []string{keyProperties, keySelectors, keyWells}, []string{keyProperties, keySelectors}); err != nil {
		return nil, err
	}
	ctx, err := parseContext(path, m)
	if err != nil {
		return nil, err
	}
	src := NewWellSource(ctx.Properties, ctx.Selectors)

	raw, ok := get(m, keyWells)
	if !ok {
		return src, nil
	}
	refPath := join(path, keyWells)
	ref, err := asMapping(refPath, raw)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(refPath, ref, []string{keyNames, keyTrajectory, keyLogrun}, nil); err != nil {
		return nil, err
	}
	if src.Wells.Names, err = optionalStrings(join(refPath, keyNames), ref, keyNames); err != nil {
		return nil, err
	}
	if v, ok := get(ref, keyTrajectory); ok {
		if src.Wells.Trajectory, err = asNonEmptyString(join(refPath, keyTrajectory), v); err != nil {
			return nil, err
		}
	}
	if v, ok := get(ref, keyLogrun); ok {
		if src.Wells.Logrun, err = asNonEmptyString(join(refPath, keyLogrun), v); err != nil {
			return nil, err
		}
	}
	return src, nil
}

func parseBlockedWellSource(path string, v any) (*BlockedWellSource, error) {
	m, err := asMapping(path, v)
	if err != nil {
		return nil, err
	}
	keys := []string{keyProperties, keySelectors, keyWells}
	if err := checkKeys(path, m, keys, keys); err != nil {
		return nil, err
	}
	ctx, err := parseContext(path, m)
	if err != nil {
		return nil, err
	}

	refPath := join(path, keyWells)
	ref, err := asMapping(refPath, lookup(m, keyWells))
	if err != nil {
		return nil, err
	}
	if err := checkKeys(refPath, ref, []string{keyGrid, keyBWName, keyNames}, []string{keyGrid, keyBWName}); err != nil {
		return nil, err
	}
	src := &BlockedWellSource{Context: ctx}
	if src.Wells.Grid, err = asNonEmptyString(join(refPath, keyGrid), lookup(ref, keyGrid)); err != nil {
		return nil, err
	}
	if src.Wells.BWName, err = asNonEmptyString(join(refPath, keyBWName), lookup(ref, keyBWName)); err != nil {
		return nil, err
	}
	if src.Wells.Names, err = optionalStrings(join(refPath, keyNames), ref, keyNames); err != nil {
		return nil, err
	}
	return src, nil
}

func parseGridSource(path string, v any) (*GridSource, error) {
	m, err := asMapping(path, v)
	if err != nil {
		return nil, err
	}
	keys := []string{keyProperties, keySelectors, keyGrid}
	if err := checkKeys(path, m, keys, keys); err != nil {
		return nil, err
	}
	ctx, err := parseContext(path, m)
	if err != nil {
		return nil, err
	}
	grid, err := asNonEmptyString(join(path, keyGrid), lookup(m, keyGrid))
	if err != nil {
		return nil, err
	}
	return &GridSource{Context: ctx, Grid: grid}, nil
}

// parseFields handles the list-or-mapping duality of properties and selectors.
func parseFields(path string, v any) (Fields, error) {
	switch v.(type) {
	case []any:
		ids, err := asStrings(path, v)
		if err != nil {
			return Fields{}, err
		}
		return NewList(ids...), nil
	case yaml.MapSlice, map[string]any, map[any]any:
		m, _ := asMapping(path, v)
		entries := make([]FieldEntry, 0, len(m))
		for _, item := range m {
			id, err := scalarString(path, item.Key)
			if err != nil {
				return Fields{}, err
			}
			cfg, err := parseFieldConfig(join(path, id), item.Value)
			if err != nil {
				return Fields{}, err
			}
			entries = append(entries, FieldEntry{ID: id, Config: cfg})
		}
		return NewMapping(entries...), nil
	}
	return Fields{}, errors.NewConfigShapeError(path, "expected a list or a mapping, got %s", describe(v))
}

func parseFieldConfig(path string, v any) (FieldConfig, error) {
	switch t := v.(type) {
	case nil:
		return FieldConfig{}, nil
	case string:
		return FieldConfig{Name: t}, nil
	case yaml.MapSlice, map[string]any, map[any]any:
	default:
		return FieldConfig{}, errors.NewConfigShapeError(path, "expected a name or a mapping, got %s", describe(v))
	}

	m, _ := asMapping(path, v)
	if err := checkKeys(path, m, []string{keyName, keyCodes}, nil); err != nil {
		return FieldConfig{}, err
	}
	var cfg FieldConfig
	if raw, ok := get(m, keyName); ok {
		name, err := scalarString(join(path, keyName), raw)
		if err != nil {
			return FieldConfig{}, err
		}
		cfg.Name = name
	}
	if raw, ok := get(m, keyCodes); ok {
		codesPath := join(path, keyCodes)
		table, err := asMapping(codesPath, raw)
		if err != nil {
			return FieldConfig{}, err
		}
		cfg.Codes = make(Codes, 0, len(table))
		for _, item := range table {
			key, err := scalarString(codesPath, item.Key)
			if err != nil {
				return FieldConfig{}, err
			}
			value, err := scalarString(join(codesPath, key), item.Value)
			if err != nil {
				return FieldConfig{}, err
			}
			cfg.Codes = append(cfg.Codes, Code{Key: key, Value: value})
		}
	}
	return cfg, nil
}

// Generic value helpers.

func asMapping(path string, v any) (yaml.MapSlice, error) {
	switch m := v.(type) {
	case yaml.MapSlice:
		return m, nil
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(yaml.MapSlice, 0, len(m))
		for _, k := range keys {
			out = append(out, yaml.MapItem{Key: k, Value: m[k]})
		}
		return out, nil
	case map[any]any:
		keys := make([]string, 0, len(m))
		byKey := make(map[string]any, len(m))
		for k, val := range m {
			s := fmt.Sprint(k)
			keys = append(keys, s)
			byKey[s] = val
		}
		sort.Strings(keys)
		out := make(yaml.MapSlice, 0, len(m))
		for _, k := range keys {
			out = append(out, yaml.MapItem{Key: k, Value: byKey[k]})
		}
		return out, nil
	}
	return nil, errors.NewConfigShapeError(path, "expected a mapping, got %s", describe(v))
}

func asList(path string, v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.NewConfigShapeError(path, "expected a list, got %s", describe(v))
	}
	return list, nil
}

func asStrings(path string, v any) ([]string, error) {
	list, err := asList(path, v)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, err := scalarString(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func optionalStrings(path string, m yaml.MapSlice, key string) ([]string, error) {
	v, ok := get(m, key)
	if !ok || v == nil {
		return nil, nil
	}
	return asStrings(path, v)
}

func asNonEmptyString(path string, v any) (string, error) {
	s, err := scalarString(path, v)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", errors.NewConfigShapeError(path, "must not be empty")
	}
	return s, nil
}

// scalarString accepts strings and other scalars; unquoted well names such as 1234
// decode as numbers.
func scalarString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil, []any, yaml.MapSlice, map[string]any, map[any]any:
		return "", errors.NewConfigShapeError(path, "expected a scalar, got %s", describe(v))
	default:
		return fmt.Sprint(s), nil
	}
}

func checkKeys(path string, m yaml.MapSlice, allowed, required []string) error {
	for _, item := range m {
		key := fmt.Sprint(item.Key)
		if !slices.Contains(allowed, key) {
			return errors.NewConfigShapeError(path, "unknown field %q (allowed: %s)", key, strings.Join(allowed, ", "))
		}
	}
	for _, key := range required {
		if _, ok := get(m, key); !ok {
			return errors.NewConfigShapeError(join(path, key), "missing required field")
		}
	}
	return nil
}

func get(m yaml.MapSlice, key string) (any, bool) {
	for _, item := range m {
		if fmt.Sprint(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}

func lookup(m yaml.MapSlice, key string) any {
	v, _ := get(m, key)
	return v
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case []any:
		return "a list"
	case yaml.MapSlice, map[string]any, map[any]any:
		return "a mapping"
	case string:
		return "a string"
	}
	return fmt.Sprintf("%T", v)
}
