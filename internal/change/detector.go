package change

import "auto-assigner/internal/host"

// Detector remembers the last scope token and fingerprint it saw.
type Detector struct {
	token host.ScopeToken
	fp    Fingerprint
	known bool
	seen  bool
}

// HasChanged reports whether (token, fp) differs from the last remembered
// state, and remembers it when it does. A token change always reports true.
func (d *Detector) HasChanged(token host.ScopeToken, fp Fingerprint) bool {
	if !d.seen || token != d.token {
		d.Enter(token)
	}

	if d.known && d.fp == fp {
		return false
	}

	d.fp = fp
	d.known = true

	return true
}

// Enter records token as the current scope and forgets the fingerprint.
func (d *Detector) Enter(token host.ScopeToken) {
	d.token = token
	d.seen = true
	d.Forget()
}

// Forget resets the fingerprint to unknown so the next HasChanged reports
// true.
func (d *Detector) Forget() {
	d.fp = 0
	d.known = false
}

// Token returns the last scope token seen.
func (d *Detector) Token() host.ScopeToken {
	return d.token
}

// Known reports whether a fingerprint is remembered for the current token.
func (d *Detector) Known() bool {
	return d.known
}
