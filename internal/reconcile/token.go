package reconcile

import "fmt"

// Side identifies one of the two live buffers in a pairing.
type Side uint8

const (
	// SidePrimary is the primary editing engine's buffer.
	SidePrimary Side = iota

	// SideSecondary is the UI-observed buffer.
	SideSecondary
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SidePrimary:
		return "primary"
	case SideSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SidePrimary {
		return SideSecondary
	}
	return SidePrimary
}

// TokenState is the arbitration state of the edition token.
type TokenState uint8

const (
	// TokenFree means neither side holds write authority; the next edit
	// from either side may acquire it.
	TokenFree TokenState = iota

	// TokenAcquired means one side holds write authority; edits from the
	// other side are recorded but not propagated until release.
	TokenAcquired

	// TokenSynchronizing means a full-content resync is in flight; the
	// token reverts to free on the next timeout.
	TokenSynchronizing
)

// String returns the token state name.
func (s TokenState) String() string {
	switch s {
	case TokenFree:
		return "free"
	case TokenAcquired:
		return "acquired"
	case TokenSynchronizing:
		return "synchronizing"
	default:
		return "unknown"
	}
}

// EditionToken is the single piece of arbitration state deciding which
// side currently owns the shared logical content. Owner is only
// meaningful while State is TokenAcquired.
type EditionToken struct {
	State TokenState
	Owner Side
}

// FreeToken returns a token in the free state.
func FreeToken() EditionToken {
	return EditionToken{State: TokenFree}
}

// AcquiredBy returns a token acquired by the given side.
func AcquiredBy(owner Side) EditionToken {
	return EditionToken{State: TokenAcquired, Owner: owner}
}

// SynchronizingToken returns a token in the synchronizing state.
func SynchronizingToken() EditionToken {
	return EditionToken{State: TokenSynchronizing}
}

// IsHeldBy returns true if the token is acquired by the given side.
func (t EditionToken) IsHeldBy(side Side) bool {
	return t.State == TokenAcquired && t.Owner == side
}

// String returns a human-readable representation of the token.
func (t EditionToken) String() string {
	if t.State == TokenAcquired {
		return fmt.Sprintf("acquired(%s)", t.Owner)
	}
	return t.State.String()
}
