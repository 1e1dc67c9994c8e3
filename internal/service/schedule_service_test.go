package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashduggal/passr-backend/internal/model"
	"github.com/akashduggal/passr-backend/internal/repository"
)

// newScheduleFixture mounts a seller session with the offer already accepted,
// the only state from which the schedule modal is reachable.
func newScheduleFixture(t *testing.T, now time.Time) (ScheduleService, ConversationService, *fakeClock, *model.Conversation) {
	t.Helper()
	clock := &fakeClock{now: now}
	sessions := repository.NewSessionRepository()
	convSvc := NewConversationService(sessions, clock)
	schedSvc := NewScheduleService(sessions, clock)

	p := testParams
	p.IsSeller = true
	p.OfferPreAccepted = true
	cv, err := convSvc.StartSession(context.Background(), p)
	require.NoError(t, err)
	return schedSvc, convSvc, clock, cv
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOpenGuards(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	ctx := context.Background()

	clock := &fakeClock{now: now}
	sessions := repository.NewSessionRepository()
	convSvc := NewConversationService(sessions, clock)
	schedSvc := NewScheduleService(sessions, clock)

	buyer, err := convSvc.StartSession(ctx, testParams)
	require.NoError(t, err)
	_, err = schedSvc.Open(ctx, buyer.ID)
	require.ErrorIs(t, err, ErrScheduleUnavailable)

	p := testParams
	p.IsSeller = true
	sellerPending, err := convSvc.StartSession(ctx, p)
	require.NoError(t, err)
	_, err = schedSvc.Open(ctx, sellerPending.ID)
	require.ErrorIs(t, err, ErrScheduleUnavailable)
}

func TestOpenDefaults(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)

	got, err := svc.Open(context.Background(), cv.ID)
	require.NoError(t, err)
	d := got.Draft
	require.NotNil(t, d)
	require.NotNil(t, d.Date)
	require.True(t, d.Date.Equal(date(2025, time.March, 15)))
	require.NotNil(t, d.Time)
	require.Equal(t, 10, d.Time.Hour())
	require.Equal(t, 15, d.Time.Minute())
	require.Empty(t, d.LocationNote)
	require.False(t, d.ShowErrors)
	require.False(t, d.TimePastWarning)
}

func TestDateOptions(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC) // a Saturday
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	opts, err := svc.DateOptions(ctx, cv.ID)
	require.NoError(t, err)

	require.Len(t, opts, 32) // Mar 15 .. Apr 15 inclusive
	require.Equal(t, "Today", opts[0].Label)
	require.Equal(t, "Tomorrow", opts[1].Label)
	require.Equal(t, "Monday, March 17, 2025", opts[2].Label)
	require.True(t, opts[0].Date.Equal(date(2025, time.March, 15)))
	require.True(t, opts[len(opts)-1].Date.Equal(date(2025, time.April, 15)))
}

func TestSelectDateOutOfRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)

	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 14))
	require.ErrorIs(t, err, ErrDateOutOfRange)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.April, 16))
	require.ErrorIs(t, err, ErrDateOutOfRange)
}

func TestSelectDateClearsStaleTime(t *testing.T) {
	// time 11:00 PM chosen for tomorrow; switching back to today at 11:30 PM
	// must discard it rather than schedule a pickup in the past
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	svc, _, clock, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.NoError(t, err)
	got, err := svc.SelectTime(ctx, cv.ID, 23, 0)
	require.NoError(t, err)
	require.Equal(t, 23, got.Draft.Time.Hour())

	clock.now = time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)
	got, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 15))
	require.NoError(t, err)
	require.Nil(t, got.Draft.Time)
	require.True(t, got.Draft.Date.Equal(date(2025, time.March, 15)))
}

func TestSelectDateKeepsFutureTime(t *testing.T) {
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, cv.ID, 21, 0)
	require.NoError(t, err)
	got, err := svc.SelectDate(ctx, cv.ID, date(2025, time.March, 15))
	require.NoError(t, err)
	require.NotNil(t, got.Draft.Time)
	require.Equal(t, 21, got.Draft.Time.Hour())
}

func TestSelectTimePastToday(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)

	got, err := svc.SelectTime(ctx, cv.ID, 10, 0)
	require.NoError(t, err)
	require.True(t, got.Draft.TimePastWarning)
	// rejected candidate must not replace the suggested time
	require.Equal(t, 15, got.Draft.Time.Minute())

	got, err = svc.SelectTime(ctx, cv.ID, 10, 30)
	require.NoError(t, err)
	require.False(t, got.Draft.TimePastWarning)
	require.Equal(t, 30, got.Draft.Time.Minute())
}

func TestSelectTimeNoLowerBoundOnFutureDay(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.NoError(t, err)

	got, err := svc.SelectTime(ctx, cv.ID, 0, 1)
	require.NoError(t, err)
	require.False(t, got.Draft.TimePastWarning)
	require.Equal(t, 0, got.Draft.Time.Hour())
	require.Equal(t, 1, got.Draft.Time.Minute())
}

func TestConfirmMissingTime(t *testing.T) {
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	svc, convSvc, clock, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, cv.ID, 23, 0)
	require.NoError(t, err)

	// stale-time guard clears the time, then confirm must flag it missing
	clock.now = time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 15))
	require.NoError(t, err)

	res, err := svc.Confirm(ctx, cv.ID)
	require.NoError(t, err)
	require.False(t, res.Confirmed)
	require.Nil(t, res.Message)
	d := res.Session.Draft
	require.NotNil(t, d)
	require.True(t, d.ShowErrors)
	require.True(t, d.TimeError())
	require.False(t, d.DateError())

	msgs, _, err := convSvc.ListMessages(ctx, cv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2) // seed messages only
}

func TestConfirmLapsedTime(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, convSvc, clock, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err) // suggested time 10:15 today

	// the modal sat open past the suggested time
	clock.now = time.Date(2025, 3, 15, 10, 16, 0, 0, time.UTC)
	res, err := svc.Confirm(ctx, cv.ID)
	require.NoError(t, err)
	require.False(t, res.Confirmed)
	d := res.Session.Draft
	require.Nil(t, d.Time)
	require.True(t, d.ShowErrors)

	msgs, _, err := convSvc.ListMessages(ctx, cv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
}

func TestConfirmAppendsScheduleMessage(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, cv.ID, 0, 1)
	require.NoError(t, err)

	res, err := svc.Confirm(ctx, cv.ID)
	require.NoError(t, err)
	require.True(t, res.Confirmed)
	require.NotNil(t, res.Message)
	require.Equal(t, model.SenderSeller, res.Message.Sender)
	require.Equal(t, "Pickup scheduled \nMar 16, 2025 at 12:01 AM", res.Message.Text)
	require.Nil(t, res.Session.Draft)
}

func TestConfirmIncludesNote(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, cv.ID, 14, 30)
	require.NoError(t, err)
	_, err = svc.SetNote(ctx, cv.ID, "Ring the side doorbell")
	require.NoError(t, err)

	res, err := svc.Confirm(ctx, cv.ID)
	require.NoError(t, err)
	require.True(t, res.Confirmed)
	require.Equal(t, "Pickup scheduled \nMar 16, 2025 at 2:30 PM\n\nNote\nRing the side doorbell", res.Message.Text)
}

func TestCancelDiscardsDraft(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, convSvc, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	_, err = svc.SetNote(ctx, cv.ID, "half-typed note")
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, cv.ID))

	got, err := convSvc.Get(ctx, cv.ID)
	require.NoError(t, err)
	require.Nil(t, got.Draft)
	msgs, _, err := convSvc.ListMessages(ctx, cv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	// reopening starts from a clean draft, nothing carries over
	reopened, err := svc.Open(ctx, cv.ID)
	require.NoError(t, err)
	require.Empty(t, reopened.Draft.LocationNote)
	require.False(t, reopened.Draft.ShowErrors)
}

func TestScheduleActionsRequireOpenModal(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 7, 0, 0, time.UTC)
	svc, _, _, cv := newScheduleFixture(t, now)
	ctx := context.Background()

	_, err := svc.SelectDate(ctx, cv.ID, date(2025, time.March, 16))
	require.ErrorIs(t, err, ErrScheduleNotOpen)
	_, err = svc.SelectTime(ctx, cv.ID, 10, 30)
	require.ErrorIs(t, err, ErrScheduleNotOpen)
	_, err = svc.Confirm(ctx, cv.ID)
	require.ErrorIs(t, err, ErrScheduleNotOpen)
	_, err = svc.DateOptions(ctx, cv.ID)
	require.ErrorIs(t, err, ErrScheduleNotOpen)
	// cancel on a closed modal is a harmless no-op
	require.NoError(t, svc.Cancel(ctx, cv.ID))
}
