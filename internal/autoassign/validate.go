package autoassign

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"auto-assigner/internal/analyze"
	"auto-assigner/internal/common"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/host"
	"auto-assigner/internal/resolve"
)

// ErrUnassigned is wrapped by every validation violation.
var ErrUnassigned = errors.New("tagged field is not assigned")

// Violation is one tagged field found unassigned by Validate.
type Violation struct {
	Owner     host.Component
	OwnerType string
	Field     string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s.%s: %v", v.OwnerType, v.Field, ErrUnassigned)
}

// Unwrap returns ErrUnassigned.
func (v Violation) Unwrap() error {
	return ErrUnassigned
}

// Report is the outcome of a validation pass.
type Report struct {
	Token      host.ScopeToken
	Owners     int
	Violations []Violation
	// Err combines every violation, nil when there are none.
	Err error
}

// Valid reports whether no violation was found.
func (r Report) Valid() bool {
	return len(r.Violations) == 0
}

// Validate checks every tagged field of every owner in scope without
// resolving anything. When a field is unassigned it reports one diagnostic
// per violation plus an aggregate one, and pauses the player if configured.
func (c *Coordinator) Validate() (report Report) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("validation aborted: %v", p)
			report.Err = multierr.Append(report.Err, err)
			c.deps.Sink.Report(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     diagnostic.CodeValidationFailed,
				Message:  err.Error(),
			})
		}
	}()

	scope := c.deps.Structure.ActiveScope()
	if !scope.Valid() {
		return report
	}

	report.Token = scope.Token

	owners := Owners(scope.Roots, c.deps.Registry)
	report.Owners = len(owners)

	for _, owner := range owners {
		for _, decl := range c.deps.Registry.Declarations(owner) {
			v, err := decl.Value(owner)
			if err == nil && !violates(v, decl) {
				continue
			}

			violation := Violation{
				Owner:     owner,
				OwnerType: common.TypeName(decl.OwnerType),
				Field:     decl.Field,
			}
			report.Violations = append(report.Violations, violation)
			report.Err = multierr.Append(report.Err, violation)

			c.deps.Sink.Report(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     diagnostic.CodeValidationViolation,
				Message:  fmt.Sprintf("Field '%s' on %s is not assigned", decl.Field, violation.OwnerType),
				Owner:    analyze.Describe(owner),
				Field:    decl.Field,
			})
		}
	}

	if report.Valid() {
		return report
	}

	msg := fmt.Sprintf("Validation failed: %d unassigned %s",
		len(report.Violations), common.Plural(len(report.Violations), "field"))
	if c.config.PauseOnViolation && c.deps.Player != nil {
		msg += ". Pausing play mode."

		c.deps.Player.Pause()
	}

	c.deps.Sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeValidationFailed,
		Message:  msg,
	})

	return report
}

// violates applies the liveness rules to resolvable fields. A field of an
// unsupported type can never be resolved, so it only fails when it holds nil.
func violates(v reflect.Value, decl analyze.Declaration) bool {
	if decl.Kind != analyze.KindUnsupported {
		return resolve.Violates(v, decl.Cardinality)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
