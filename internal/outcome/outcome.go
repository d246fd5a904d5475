// SPDX-License-Identifier: MPL-2.0

package outcome

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

const (
	// ReasonMissing means the artifact a step acts on was absent.
	ReasonMissing Reason = "missing"
	// ReasonPermission means the OS rejected the step.
	ReasonPermission Reason = "permission"
	// ReasonTimeout means a bounded wait elapsed.
	ReasonTimeout Reason = "timeout"
	// ReasonUnsupported means the host offers no implementation of the step.
	ReasonUnsupported Reason = "unsupported"
	// ReasonCorrupt means persisted state was unparsable and was reset.
	ReasonCorrupt Reason = "corrupt"
	// ReasonIO covers every other failure.
	ReasonIO Reason = "io"
)

type (
	// Reason classifies a soft failure.
	Reason string

	// SoftFailure records one absorbed failure inside a best-effort step.
	SoftFailure struct {
		Step   string
		Reason Reason
		Err    error
	}

	// Outcome collects the soft failures of a best-effort operation. The zero
	// value is a clean outcome.
	Outcome struct {
		Failures []SoftFailure
	}
)

// Classify maps err onto a Reason.
func Classify(err error) Reason {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNotFound):
		return ReasonMissing
	case errors.Is(err, fs.ErrPermission), errors.Is(err, ErrPermissionDenied):
		return ReasonPermission
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, errors.ErrUnsupported):
		return ReasonUnsupported
	case errors.Is(err, ErrCorrupt):
		return ReasonCorrupt
	default:
		return ReasonIO
	}
}

// Record adds a soft failure for step if err is non-nil and reports whether
// anything was recorded.
func (o *Outcome) Record(step string, err error) bool {
	if err == nil {
		return false
	}
	o.Failures = append(o.Failures, SoftFailure{Step: step, Reason: Classify(err), Err: err})
	return true
}

// RecordReason adds a soft failure with an explicit reason.
func (o *Outcome) RecordReason(step string, reason Reason, err error) {
	o.Failures = append(o.Failures, SoftFailure{Step: step, Reason: reason, Err: err})
}

// Merge appends the failures of other.
func (o *Outcome) Merge(other Outcome) {
	o.Failures = append(o.Failures, other.Failures...)
}

// OK reports whether no soft failure occurred.
func (o Outcome) OK() bool { return len(o.Failures) == 0 }

// Has reports whether any failure carries reason.
func (o Outcome) Has(reason Reason) bool {
	for _, f := range o.Failures {
		if f.Reason == reason {
			return true
		}
	}
	return false
}

// Step returns the first failure recorded for step.
func (o Outcome) Step(step string) (SoftFailure, bool) {
	for _, f := range o.Failures {
		if f.Step == step {
			return f, true
		}
	}
	return SoftFailure{}, false
}

// Err joins all recorded errors, or returns nil for a clean outcome.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	errs := make([]error, 0, len(o.Failures))
	for _, f := range o.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// String summarizes the outcome as "step(reason), ...".
func (o Outcome) String() string {
	if o.OK() {
		return "ok"
	}
	parts := make([]string, 0, len(o.Failures))
	for _, f := range o.Failures {
		parts = append(parts, f.Step+"("+string(f.Reason)+")")
	}
	return strings.Join(parts, ", ")
}
