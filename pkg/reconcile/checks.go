package reconcile

import (
	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Check names one of the consistency checks Run executes.
type Check string

// Checks, in execution order.
const (
	CheckGridSet        Check = "grids"
	CheckBlockedWellSet Check = "blocked_well_sets"
	CheckPropertySet    Check = "properties"
	CheckSelectorSet    Check = "selectors"
	CheckWellSet        Check = "wells"
)

// String returns the string representation of a check.
func (c Check) String() string {
	return string(c)
}

// Checks returns every check in execution order.
func Checks() []Check {
	return []Check{CheckGridSet, CheckBlockedWellSet, CheckPropertySet, CheckSelectorSet, CheckWellSet}
}

// Status is the outcome of a single check.
type Status string

// Check statuses.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome is the status of one check in a run.
type Outcome struct {
	Check  Check  `json:"check" yaml:"check"`
	Status Status `json:"status" yaml:"status"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// FailedCheck returns the check that produced err, if err is a consistency fault.
func FailedCheck(err error) (Check, bool) {
	var (
		grids     *errors.InconsistentGridsError
		unknown   *errors.UnknownBlockedWellSetError
		property  *errors.PropertyMismatchError
		selector  *errors.SelectorMismatchError
		wellNames *errors.WellSetMismatchError
	)
	switch {
	case errors.As(err, &grids):
		return CheckGridSet, true
	case errors.As(err, &unknown):
		return CheckBlockedWellSet, true
	case errors.As(err, &property):
		return CheckPropertySet, true
	case errors.As(err, &selector):
		return CheckSelectorSet, true
	case errors.As(err, &wellNames):
		return CheckWellSet, true
	}
	return "", false
}

// Report returns the outcome of every check given the error Run returned.
// Checks before the failed one passed and the ones after it were skipped.
// It returns false when err is neither nil nor a consistency fault.
func Report(err error) ([]Outcome, bool) {
	failed, isFault := FailedCheck(err)
	if err != nil && !isFault {
		return nil, false
	}

	outcomes := make([]Outcome, 0, len(Checks()))
	status := StatusPassed
	for _, c := range Checks() {
		switch {
		case c == failed:
			outcomes = append(outcomes, Outcome{Check: c, Status: StatusFailed, Detail: err.Error()})
			status = StatusSkipped
		default:
			outcomes = append(outcomes, Outcome{Check: c, Status: status})
		}
	}
	return outcomes, true
}
