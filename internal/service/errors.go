package service

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// Offer gate misuse. The mobile UI never reaches these; they exist for
	// the HTTP surface.
	ErrNotBuyer             = errors.New("only the buyer can accept an offer")
	ErrOfferAlreadyAccepted = errors.New("offer already accepted")

	// Timeline guards.
	ErrComposeDisabled = errors.New("composition is disabled until the offer is accepted")
	ErrEmptyText       = errors.New("text is required")

	// Schedule modal guards. Temporal validation failures are NOT errors;
	// they come back as draft state.
	ErrScheduleUnavailable = errors.New("scheduling requires the seller perspective and an accepted offer")
	ErrScheduleNotOpen     = errors.New("schedule modal is not open")
	ErrDateOutOfRange      = errors.New("date must be within one month of today")
)
