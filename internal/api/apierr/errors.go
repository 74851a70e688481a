package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/alliance"
	"github.com/frostgate/svscoord/internal/services/auth"
	redisstorage "github.com/frostgate/svscoord/internal/storage/redis"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeProfileIncomplete     = "PROFILE_INCOMPLETE"
	CodeProfileNotApproved    = "PROFILE_NOT_APPROVED"
	CodePlayerIDNotNumeric    = "PLAYER_ID_NOT_NUMERIC"
	CodePlayerIDClaimed       = "PLAYER_ID_CLAIMED"
	CodePlayerIDReserved      = "PLAYER_ID_RESERVED"
	CodeDuplicatePlayerID     = "DUPLICATE_PLAYER_ID"
	CodeInviteNotFound        = "INVITE_NOT_FOUND"
	CodeInviteExists          = "INVITE_EXISTS"
	CodeInviteForPlayerID     = "INVITE_FOR_PLAYER_ID"
	CodeEmailAlreadyMember    = "EMAIL_ALREADY_MEMBER"
	CodeCampaignNotFound      = "CAMPAIGN_NOT_FOUND"
	CodeCampaignExists        = "CAMPAIGN_EXISTS"
	CodeCampaignNotActive     = "CAMPAIGN_NOT_ACTIVE"
	CodeCampaignCompleted     = "CAMPAIGN_COMPLETED"
	CodeBeforeBattleDate      = "BEFORE_BATTLE_DATE"
	CodeBattleDateNotSaturday = "BATTLE_DATE_NOT_SATURDAY"
	CodeVictorNotSet          = "VICTOR_NOT_SET"
	CodeInvalidVictor         = "INVALID_VICTOR"
	CodeNoPrepScores          = "NO_PREP_SCORES"
	CodeSlotNotFound          = "SLOT_NOT_FOUND"
	CodeSlotReserved          = "SLOT_RESERVED"
	CodeSlotFree              = "SLOT_FREE"
	CodeNotSlotOwner          = "NOT_SLOT_OWNER"
	CodeDayAlreadyBooked      = "DAY_ALREADY_BOOKED"
	CodePrepDayNotFound       = "PREP_DAY_NOT_FOUND"
	CodeAccountExists         = "ACCOUNT_EXISTS"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeConflict              = "CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrProfileIncomplete):
		return &httpError{http.StatusConflict, APIError{CodeProfileIncomplete, "Profile is incomplete"}}
	case errors.Is(err, model.ErrProfileNotApproved):
		return &httpError{http.StatusForbidden, APIError{CodeProfileNotApproved, "Profile has not been approved"}}
	case errors.Is(err, model.ErrPlayerIDNotNumeric):
		return &httpError{http.StatusBadRequest, APIError{CodePlayerIDNotNumeric, "Player ID must be numeric"}}
	case errors.Is(err, model.ErrPlayerIDClaimed):
		return &httpError{http.StatusConflict, APIError{CodePlayerIDClaimed, "Player ID is already claimed"}}
	case errors.Is(err, model.ErrPlayerIDReserved):
		return &httpError{http.StatusConflict, APIError{CodePlayerIDReserved, "Player ID is reserved by a placeholder account"}}
	case errors.Is(err, model.ErrDuplicatePlayerID):
		return &httpError{http.StatusConflict, APIError{CodeDuplicatePlayerID, "Player ID has multiple owners; contact an administrator"}}
	case errors.Is(err, model.ErrInviteNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeInviteNotFound, "Invite not found"}}
	case errors.Is(err, model.ErrInviteExists):
		return &httpError{http.StatusConflict, APIError{CodeInviteExists, "An active invite already exists for this email"}}
	case errors.Is(err, model.ErrInviteForPlayerID):
		return &httpError{http.StatusConflict, APIError{CodeInviteForPlayerID, "An active invite already exists for this player ID"}}
	case errors.Is(err, model.ErrEmailAlreadyMember):
		return &httpError{http.StatusConflict, APIError{CodeEmailAlreadyMember, "A member with this email already exists"}}
	case errors.Is(err, model.ErrCampaignNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCampaignNotFound, "Campaign not found"}}
	case errors.Is(err, model.ErrCampaignExists):
		return &httpError{http.StatusConflict, APIError{CodeCampaignExists, "An active campaign already exists"}}
	case errors.Is(err, model.ErrCampaignNotActive):
		return &httpError{http.StatusConflict, APIError{CodeCampaignNotActive, "No active campaign"}}
	case errors.Is(err, model.ErrCampaignCompleted):
		return &httpError{http.StatusConflict, APIError{CodeCampaignCompleted, "Campaign is already completed"}}
	case errors.Is(err, model.ErrBeforeBattleDate):
		return &httpError{http.StatusConflict, APIError{CodeBeforeBattleDate, "Battle date has not passed yet"}}
	case errors.Is(err, model.ErrBattleDateNotSaturday):
		return &httpError{http.StatusBadRequest, APIError{CodeBattleDateNotSaturday, "Battle date must fall on a Saturday"}}
	case errors.Is(err, model.ErrVictorNotSet):
		return &httpError{http.StatusConflict, APIError{CodeVictorNotSet, "Victor must be set before completion"}}
	case errors.Is(err, model.ErrInvalidVictor):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidVictor, "Victor must be 'self' or 'opponent'"}}
	case errors.Is(err, model.ErrNoPrepScores):
		return &httpError{http.StatusConflict, APIError{CodeNoPrepScores, "Campaign has no prep score entries"}}
	case errors.Is(err, model.ErrSlotNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSlotNotFound, "Slot not found"}}
	case errors.Is(err, model.ErrSlotReserved):
		return &httpError{http.StatusConflict, APIError{CodeSlotReserved, "Slot is already reserved"}}
	case errors.Is(err, model.ErrSlotFree):
		return &httpError{http.StatusConflict, APIError{CodeSlotFree, "Slot is not reserved"}}
	case errors.Is(err, model.ErrNotSlotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotSlotOwner, "Reservation belongs to another user"}}
	case errors.Is(err, model.ErrDayAlreadyBooked):
		return &httpError{http.StatusConflict, APIError{CodeDayAlreadyBooked, "You already hold a reservation for this day"}}
	case errors.Is(err, model.ErrPrepDayNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePrepDayNotFound, "Prep day not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid player ID or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrAccountExists):
		return &httpError{http.StatusConflict, APIError{CodeAccountExists, "Account already exists"}}

	// Map alliance validation errors
	case errors.Is(err, alliance.ErrEmptyTag), errors.Is(err, alliance.ErrBadStatus):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	// Map storage errors
	case errors.Is(err, redisstorage.ErrTxConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update conflict; retry the request"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error for non-admin callers
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Administrator role required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
