package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")

	// Cart errors
	ErrAlreadyStacked = errors.New("event is already in the stack")
	ErrTeamRequired   = errors.New("group event requires a team roster")
	ErrTeamTooSmall   = errors.New("team below minimum size")
	ErrTeamTooLarge   = errors.New("team above maximum size")

	// Checkout errors
	ErrEmptyCart         = errors.New("stack is empty")
	ErrCashTokenRequired = errors.New("cash token required for cash checkout")
	ErrCashNotOffered    = errors.New("cash payment is only offered at the venue desk")

	// Staff errors
	ErrNotLoggedIn     = errors.New("no staff session")
	ErrReservedAccount = errors.New("the first staff account cannot be deleted")
	ErrRoleForbidden   = errors.New("tool not available for this role")

	// Gate errors
	ErrNoEligibleLookup = errors.New("no eligible lookup awaiting confirmation")
	ErrStationPaused    = errors.New("station is paused")
)
