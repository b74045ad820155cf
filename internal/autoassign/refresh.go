package autoassign

import (
	"fmt"

	"auto-assigner/internal/analyze"
	"auto-assigner/internal/common"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/host"
	"auto-assigner/internal/resolve"
)

// RefreshReport is the outcome of a manual refresh.
type RefreshReport struct {
	Results []resolve.Result
	Changed bool
}

// Refresh clears every tagged field of owner and resolves it again. Unlike
// a pass, it replaces values that are already assigned.
func (c *Coordinator) Refresh(owner host.Component) (report RefreshReport) {
	label := analyze.Describe(owner)

	defer func() {
		if p := recover(); p != nil {
			c.deps.Sink.Report(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     diagnostic.CodeFieldError,
				Message:  fmt.Sprintf("refresh aborted: %v", p),
				Owner:    label,
			})
		}
	}()

	if !c.HasTaggedFields(owner) {
		c.deps.Sink.Report(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticInfo,
			Code:     diagnostic.CodeRefreshed,
			Message:  "No auto-assigned fields",
			Owner:    label,
		})

		return report
	}

	cleared := 0

	for _, decl := range c.deps.Registry.Declarations(owner) {
		if err := c.resolver.Clear(owner, decl); err != nil {
			report.Results = append(report.Results, resolve.Result{
				Field:  decl.Field,
				Status: resolve.StatusError,
				Err:    err,
			})

			continue
		}

		cleared++

		r := c.resolver.Resolve(owner, decl)
		report.Results = append(report.Results, r)
		report.Changed = report.Changed || r.Changed()
	}

	if report.Changed && c.deps.Persistence != nil {
		if scope := c.deps.Structure.ActiveScope(); scope.Valid() {
			c.deps.Persistence.MarkDirty(scope)
		}
	}

	c.deps.Sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticInfo,
		Code:     diagnostic.CodeRefreshed,
		Message:  fmt.Sprintf("Refreshed %d auto-assigned %s", cleared, common.Plural(cleared, "field")),
		Owner:    label,
	})

	return report
}
