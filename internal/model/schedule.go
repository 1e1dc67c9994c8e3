package model

import "time"

// ScheduleDraft is the in-progress pickup proposal. It exists only while the
// schedule modal is open (Conversation.Draft == nil means closed) and is
// discarded whole on confirm or cancel, so stale field combinations cannot
// leak into the next opening.
type ScheduleDraft struct {
	// Date is the midnight of the chosen pickup day.
	Date *time.Time
	// Time carries the chosen clock time; only its hour and minute are
	// meaningful, the date part is whatever instant it was derived from.
	Time *time.Time

	LocationNote    string
	ShowErrors      bool
	TimePastWarning bool

	// OpenedOn is the midnight of the day the modal opened. Date options and
	// their Today/Tomorrow labels are computed relative to it.
	OpenedOn time.Time
}

// DateError reports whether the required-date error should show. Derived
// rather than stored so it can never be set for a present field.
func (d *ScheduleDraft) DateError() bool {
	return d.ShowErrors && d.Date == nil
}

// TimeError reports whether the required-time error should show.
func (d *ScheduleDraft) TimeError() bool {
	return d.ShowErrors && d.Time == nil
}
