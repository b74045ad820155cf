package autoassign

import (
	"go.uber.org/zap"

	"auto-assigner/internal/change"
	"auto-assigner/internal/host"
)

var _ host.Listener = (*Coordinator)(nil)

// Init subscribes the coordinator to src. Calling it again while subscribed
// is a no-op.
func (c *Coordinator) Init(src host.EventSource) {
	if c.cancel != nil || src == nil {
		return
	}

	c.cancel = src.Subscribe(c)
}

// Shutdown cancels the subscription made by Init.
func (c *Coordinator) Shutdown() {
	if c.cancel == nil {
		return
	}

	c.cancel()
	c.cancel = nil
}

// StructureChanged runs a pass when the hierarchy fingerprint moved.
func (c *Coordinator) StructureChanged() {
	if c.running {
		return
	}

	scope := c.deps.Structure.ActiveScope()
	if !scope.Valid() {
		return
	}

	fp := change.Compute(scope.Roots, c.config.Fingerprint)
	if !c.detector.HasChanged(scope.Token, fp) {
		return
	}

	if c.states[scope.Token] == StateStable {
		c.states[scope.Token] = StateDirty
	}

	c.deps.Logger.Debug("hierarchy changed", zap.String("scope", string(scope.Token)))
	c.RunPass()
}

// ScopeOpened resolves the newly opened scene or prefab.
func (c *Coordinator) ScopeOpened(scope host.Scope) {
	c.detector.Enter(scope.Token)
	c.RunPass()
}

// ScopeClosed forgets the fingerprint so the next notification re-runs.
func (c *Coordinator) ScopeClosed(host.Scope) {
	c.detector.Forget()
}

// PlayModeEntered validates the active scope.
func (c *Coordinator) PlayModeEntered() {
	c.Validate()
}

// AfterReload resolves again once code was reloaded, since owner types may
// have gained tagged fields.
func (c *Coordinator) AfterReload() {
	c.detector.Forget()
	c.RunPass()
}
