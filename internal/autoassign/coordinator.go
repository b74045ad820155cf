// Package autoassign drives field resolution over the open scope.
//
// A Coordinator enumerates owners in the active scene or prefab stage,
// resolves their tagged fields, marks the scope dirty when anything was
// written and validates the result on entry into play mode. It listens to
// host lifecycle notifications and uses a change.Detector to skip
// notifications that did not change the hierarchy.
package autoassign

import (
	"fmt"

	"go.uber.org/zap"

	"auto-assigner/internal/analyze"
	"auto-assigner/internal/change"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/host"
	"auto-assigner/internal/resolve"
)

// Deps are the host services a coordinator talks to. Structure is required;
// the rest may be nil.
type Deps struct {
	Structure   host.Structure
	Assets      host.AssetIndex
	Persistence host.Persistence
	Player      host.Player
	Sink        diagnostic.Sink
	Registry    *analyze.Registry
	Logger      *zap.Logger
}

// Config holds coordinator settings.
type Config struct {
	Fingerprint change.Mode
	// PauseOnViolation pauses the player when validation finds unassigned
	// fields.
	PauseOnViolation bool
	Resolve          resolve.Config
}

// DefaultConfig returns the default coordinator configuration.
func DefaultConfig() Config {
	return Config{
		Fingerprint:      change.ModeDeep,
		PauseOnViolation: true,
		Resolve:          resolve.DefaultConfig(),
	}
}

// OwnerResult is the outcome of resolving one owner.
type OwnerResult struct {
	Owner   host.Component
	Results []resolve.Result
	Changed bool
}

// PassReport summarizes one resolution pass.
type PassReport struct {
	Token host.ScopeToken
	// Ran is false when the pass was skipped: no scope was open or a pass
	// was already running.
	Ran     bool
	Owners  []OwnerResult
	Changed bool
}

// Fields returns the number of fields written.
func (p PassReport) Fields() int {
	n := 0

	for _, o := range p.Owners {
		for _, r := range o.Results {
			if r.Changed() {
				n++
			}
		}
	}

	return n
}

// Coordinator runs resolution and validation passes.
type Coordinator struct {
	deps     Deps
	config   Config
	resolver *resolve.Resolver
	detector change.Detector
	states   map[host.ScopeToken]State
	running  bool
	cancel   func()
}

// New creates a coordinator.
func New(deps Deps, config Config) *Coordinator {
	if deps.Sink == nil {
		deps.Sink = diagnostic.Discard
	}

	if deps.Registry == nil {
		deps.Registry = analyze.NewRegistry()
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	if config.Fingerprint == "" {
		config.Fingerprint = change.ModeDeep
	}

	return &Coordinator{
		deps:     deps,
		config:   config,
		resolver: resolve.NewResolver(deps.Assets, deps.Sink, config.Resolve),
		states:   make(map[host.ScopeToken]State),
	}
}

// HasTaggedFields reports whether owner declares at least one tagged field,
// i.e. whether Refresh applies to it.
func (c *Coordinator) HasTaggedFields(owner host.Component) bool {
	return owner != nil && c.deps.Registry.HasTaggedFields(owner)
}

// RunPass resolves every owner in the active scope and reports whether any
// field was written.
func (c *Coordinator) RunPass() bool {
	return c.Pass().Changed
}

// Pass is RunPass with a detailed report.
func (c *Coordinator) Pass() (report PassReport) {
	if c.running {
		c.deps.Logger.Debug("pass already running, ignoring nested request")
		return report
	}

	scope := c.deps.Structure.ActiveScope()
	if !scope.Valid() {
		return report
	}

	c.running = true

	defer func() {
		c.running = false

		if p := recover(); p != nil {
			c.deps.Sink.Report(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     diagnostic.CodeFieldError,
				Message:  fmt.Sprintf("resolution pass aborted: %v", p),
			})
		}
	}()

	report.Token = scope.Token
	report.Ran = true

	for _, owner := range Owners(scope.Roots, c.deps.Registry) {
		res := OwnerResult{Owner: owner}

		for _, decl := range c.deps.Registry.Declarations(owner) {
			r := c.resolver.Resolve(owner, decl)
			res.Results = append(res.Results, r)
			res.Changed = res.Changed || r.Changed()
		}

		report.Owners = append(report.Owners, res)
		report.Changed = report.Changed || res.Changed
	}

	if report.Changed && c.deps.Persistence != nil {
		c.deps.Persistence.MarkDirty(scope)
	}

	c.observe(scope)
	c.states[scope.Token] = StateStable

	c.deps.Logger.Debug("resolution pass complete",
		zap.String("scope", string(scope.Token)),
		zap.Int("owners", len(report.Owners)),
		zap.Int("assigned", report.Fields()),
		zap.Bool("changed", report.Changed))

	return report
}

// observe records the current fingerprint so the next structural
// notification only triggers a pass when the hierarchy really changed.
func (c *Coordinator) observe(scope host.Scope) {
	c.detector.HasChanged(scope.Token, change.Compute(scope.Roots, c.config.Fingerprint))
}

// State returns the resolution state of a scope.
func (c *Coordinator) State(token host.ScopeToken) State {
	return c.states[token]
}

// Owners lists the components under roots that declare tagged fields, in
// hierarchy pre-order. Inactive nodes are included.
func Owners(roots []host.Node, registry *analyze.Registry) []host.Component {
	var out []host.Component

	var walk func(n host.Node)
	walk = func(n host.Node) {
		if n == nil || !n.Alive() {
			return
		}

		for _, comp := range n.Components() {
			if comp != nil && comp.Alive() && registry.HasTaggedFields(comp) {
				out = append(out, comp)
			}
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	for _, r := range roots {
		walk(r)
	}

	return out
}
