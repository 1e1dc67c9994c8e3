package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akashduggal/passr-backend/internal/model"
	"github.com/akashduggal/passr-backend/internal/repository"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

// DateOption is one selectable pickup day.
type DateOption struct {
	Date  time.Time
	Label string
}

// ConfirmResult reports a confirmation attempt. Confirmed=false is not an
// error: the draft stays open with its error flags set and the caller
// re-renders it.
type ConfirmResult struct {
	Confirmed bool
	Message   *model.Message
	Session   *model.Conversation
}

// ScheduleService drives the pickup scheduling modal: open, field edits,
// confirm, cancel. Every temporal check re-samples the clock at the moment
// of validation so a modal left open cannot smuggle a lapsed time through.
type ScheduleService interface {
	Open(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	DateOptions(ctx context.Context, id uuid.UUID) ([]DateOption, error)
	SelectDate(ctx context.Context, id uuid.UUID, date time.Time) (*model.Conversation, error)
	SelectTime(ctx context.Context, id uuid.UUID, hour, minute int) (*model.Conversation, error)
	SetNote(ctx context.Context, id uuid.UUID, note string) (*model.Conversation, error)
	Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type scheduleService struct {
	sessions repository.SessionRepository
	clock    timeutil.Clock
}

func NewScheduleService(sessions repository.SessionRepository, clock timeutil.Clock) ScheduleService {
	return &scheduleService{sessions: sessions, clock: clock}
}

// Open creates a fresh draft: date defaults to today, time to now rounded up
// to the next quarter hour, all flags clear. Reachable only for the seller
// perspective once the offer is accepted.
func (s *scheduleService) Open(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	if !cv.CanSchedule() {
		return nil, ErrScheduleUnavailable
	}
	now := s.clock.Now()
	today := timeutil.StartOfDay(now)
	suggested := timeutil.RoundUpToQuarterHour(now)
	cv.Draft = &model.ScheduleDraft{
		Date:     &today,
		Time:     &suggested,
		OpenedOn: today,
	}
	cv.LastActive = now
	return cv.Clone(), nil
}

// DateOptions lists every selectable pickup day: the day the modal opened
// through one calendar month later, labelled relative to that day.
func (s *scheduleService) DateOptions(ctx context.Context, id uuid.UUID) ([]DateOption, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	if cv.Draft == nil {
		return nil, ErrScheduleNotOpen
	}
	opened := cv.Draft.OpenedOn
	days := timeutil.DatesThroughNextMonth(opened)
	opts := make([]DateOption, 0, len(days))
	for _, d := range days {
		opts = append(opts, DateOption{Date: d, Label: timeutil.DateLabel(d, opened)})
	}
	return opts, nil
}

// SelectDate picks a pickup day. A date choice clears the required-field
// errors. Picking today while holding a time that has already passed
// discards that time, forcing a re-selection instead of carrying a stale
// value chosen for a later day.
func (s *scheduleService) SelectDate(ctx context.Context, id uuid.UUID, date time.Time) (*model.Conversation, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	d := cv.Draft
	if d == nil {
		return nil, ErrScheduleNotOpen
	}
	now := s.clock.Now()
	// normalize into the session's clock location; callers may parse dates
	// in a different zone
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(d.OpenedOn) || day.After(d.OpenedOn.AddDate(0, 1, 0)) {
		return nil, ErrDateOutOfRange
	}
	d.ShowErrors = false
	if timeutil.SameDay(day, now) && d.Time != nil && !timeutil.Combine(day, *d.Time).After(now) {
		d.Time = nil
	}
	d.Date = &day
	cv.LastActive = now
	return cv.Clone(), nil
}

// SelectTime proposes a clock time for the chosen day. With today selected
// the candidate must still be in the future; a lapsed candidate is rejected
// with the warning flag set and the previous time kept.
func (s *scheduleService) SelectTime(ctx context.Context, id uuid.UUID, hour, minute int) (*model.Conversation, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	d := cv.Draft
	if d == nil {
		return nil, ErrScheduleNotOpen
	}
	now := s.clock.Now()
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if d.Date != nil && timeutil.SameDay(*d.Date, now) && !timeutil.Combine(*d.Date, candidate).After(now) {
		d.TimePastWarning = true
		cv.LastActive = now
		return cv.Clone(), nil
	}
	d.Time = &candidate
	d.TimePastWarning = false
	d.ShowErrors = false
	cv.LastActive = now
	return cv.Clone(), nil
}

func (s *scheduleService) SetNote(ctx context.Context, id uuid.UUID, note string) (*model.Conversation, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	if cv.Draft == nil {
		return nil, ErrScheduleNotOpen
	}
	cv.Draft.LocationNote = note
	cv.LastActive = s.clock.Now()
	return cv.Clone(), nil
}

// Confirm re-validates the draft against a fresh "now". Missing fields or a
// time that lapsed while the modal stayed open keep it open with error state;
// a valid draft becomes a seller-authored system message and the draft is
// discarded.
func (s *scheduleService) Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	d := cv.Draft
	if d == nil {
		return nil, ErrScheduleNotOpen
	}
	now := s.clock.Now()
	cv.LastActive = now
	if d.Date == nil || d.Time == nil {
		d.ShowErrors = true
		return &ConfirmResult{Session: cv.Clone()}, nil
	}
	pickup := timeutil.Combine(*d.Date, *d.Time)
	if !pickup.After(now) {
		d.Time = nil
		d.ShowErrors = true
		return &ConfirmResult{Session: cv.Clone()}, nil
	}
	msg := cv.Append(pickupText(pickup, d.LocationNote), model.SenderSeller, now)
	cv.Draft = nil
	return &ConfirmResult{Confirmed: true, Message: &msg, Session: cv.Clone()}, nil
}

// Cancel discards the draft unconditionally. Closing an already-closed modal
// is a no-op so backdrop taps cannot race an explicit close.
func (s *scheduleService) Cancel(ctx context.Context, id uuid.UUID) error {
	cv, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	cv.Lock()
	defer cv.Unlock()
	cv.Draft = nil
	cv.LastActive = s.clock.Now()
	return nil
}

func (s *scheduleService) find(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	cv, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cv, nil
}

func pickupText(pickup time.Time, note string) string {
	text := "Pickup scheduled \n" + timeutil.FormatDate(pickup) + " at " + timeutil.FormatClock(pickup)
	if note != "" {
		text += "\n\nNote\n" + note
	}
	return text
}
