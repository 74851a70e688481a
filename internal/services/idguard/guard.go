package idguard

import (
	"regexp"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/storage"
)

// Context describes which signup flow is asking to claim a player ID.
type Context string

const (
	// ContextSelfSignup is the player-ID/password signup flow; it is the
	// only flow allowed to convert a placeholder account in place.
	ContextSelfSignup Context = "self-signup"
	// ContextExternalSignup is an externally-authenticated signup flow.
	ContextExternalSignup Context = "external-signup"
	// ContextInviteCreate is an admin creating an invite.
	ContextInviteCreate Context = "invite-create"
)

// Reasons explaining a claim decision.
const (
	ReasonNone                = "none"
	ReasonAlreadyClaimed      = "already-claimed"
	ReasonReservedPlaceholder = "reserved-placeholder"
	ReasonPlaceholderLink     = "placeholder-link"
)

// Decision is the outcome of a claim check. When Reason is
// ReasonPlaceholderLink, Placeholder is the account the caller must
// convert in place rather than creating a new one.
type Decision struct {
	Allowed     bool
	Reason      string
	Placeholder *model.User
}

var numericID = regexp.MustCompile(`^\d+$`)

// ValidID reports whether playerID matches the numeric-only pattern.
func ValidID(playerID model.PlayerID) bool {
	return numericID.MatchString(string(playerID))
}

// Validate checks whether playerID may be claimed in the given flow.
//
// It runs against a transaction, not the bare store: the check and the
// write that depends on it are only race-free when they share one
// transaction, so callers must re-validate inside the transaction that
// performs the claiming write. More than one existing owner means the
// uniqueness invariant is already broken and is reported as fatal.
func Validate(tx storage.Txn, playerID model.PlayerID, claimCtx Context) (Decision, error) {
	owners, err := tx.UsersByPlayerID(playerID)
	if err != nil {
		return Decision{}, err
	}

	if len(owners) == 0 {
		return Decision{Allowed: true, Reason: ReasonNone}, nil
	}
	if len(owners) > 1 {
		return Decision{}, model.ErrDuplicatePlayerID
	}

	owner := owners[0]

	if owner.IsPlaceholder && !owner.AuthLinked {
		if claimCtx == ContextSelfSignup {
			return Decision{Allowed: true, Reason: ReasonPlaceholderLink, Placeholder: owner}, nil
		}
		return Decision{Allowed: false, Reason: ReasonReservedPlaceholder}, nil
	}

	return Decision{Allowed: false, Reason: ReasonAlreadyClaimed}, nil
}

// Err maps a denial reason to its sentinel error.
func (d Decision) Err() error {
	switch d.Reason {
	case ReasonReservedPlaceholder:
		return model.ErrPlayerIDReserved
	case ReasonAlreadyClaimed:
		return model.ErrPlayerIDClaimed
	default:
		return nil
	}
}
