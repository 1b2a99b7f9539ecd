package sources

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Code is one entry of a coding table: a sortable key and its display value.
type Code struct {
	Key   string
	Value string
}

// Codes is a coding table in configuration order.
type Codes []Code

// Sorted returns the table ordered by key. Keys that all parse as numbers are
// compared numerically, otherwise lexically. A table mixing numeric and text
// keys has no defined order and returns an error.
func (c Codes) Sorted() (Codes, error) {
	out := slices.Clone(c)
	if len(out) == 0 {
		return out, nil
	}

	nums := make(map[string]float64, len(out))
	for _, code := range out {
		if n, err := strconv.ParseFloat(strings.TrimSpace(code.Key), 64); err == nil {
			nums[code.Key] = n
		}
	}

	switch len(nums) {
	case len(out):
		slices.SortStableFunc(out, func(a, b Code) int {
			switch {
			case nums[a.Key] < nums[b.Key]:
				return -1
			case nums[a.Key] > nums[b.Key]:
				return 1
			}
			return 0
		})
	case 0:
		slices.SortStableFunc(out, func(a, b Code) int {
			return strings.Compare(a.Key, b.Key)
		})
	default:
		return nil, fmt.Errorf("coding table mixes numeric and text keys")
	}
	return out, nil
}

// Values returns the display values in table order.
func (c Codes) Values() []string {
	values := make([]string, len(c))
	for i, code := range c {
		values[i] = code.Value
	}
	return values
}

// Lookup returns the display value of a key. Numeric keys match numerically,
// so a sample value "1.0" finds the code keyed 1.
func (c Codes) Lookup(key string) (string, bool) {
	for _, code := range c {
		if code.Key == key {
			return code.Value, true
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil {
		return "", false
	}
	for _, code := range c {
		if m, err := strconv.ParseFloat(strings.TrimSpace(code.Key), 64); err == nil && m == n {
			return code.Value, true
		}
	}
	return "", false
}
