package autoassign

//go:generate go tool stringer -type=State -trimprefix=State -output=state_string.go

// State tracks resolution progress per scope token.
type State int

const (
	// StateUnknown means no pass has completed for the scope yet.
	StateUnknown State = iota
	// StateStable means the last pass saw the current hierarchy.
	StateStable
	// StateDirty means a structural change was detected since the last pass.
	StateDirty
)
