package handler

import (
	"github.com/akashduggal/passr-backend/internal/model"
	"github.com/akashduggal/passr-backend/internal/service"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

type MessageView struct {
	ID               int    `json:"id"`
	Text             string `json:"text"`
	Sender           string `json:"sender"`
	TimestampDisplay string `json:"timestampDisplay"`
	Alignment        string `json:"alignment"`
}

type ScheduleView struct {
	Open            bool   `json:"open"`
	DateLabel       string `json:"dateLabel"`
	TimeLabel       string `json:"timeLabel"`
	LocationNote    string `json:"locationNote"`
	DateError       bool   `json:"dateError"`
	TimeError       bool   `json:"timeError"`
	TimePastWarning bool   `json:"timePastWarning"`
}

type SessionView struct {
	SessionID        string        `json:"sessionId"`
	IsSeller         bool          `json:"isSeller"`
	CounterpartyName string        `json:"counterpartyName"`
	ProductTitle     string        `json:"productTitle"`
	ProductPrice     float64       `json:"productPrice"`
	OfferAccepted    bool          `json:"offerAccepted"`
	ComposeEnabled   bool          `json:"composeEnabled"`
	CanAcceptOffer   bool          `json:"canAcceptOffer"`
	CanSchedule      bool          `json:"canSchedule"`
	Messages         []MessageView `json:"messages"`
	Schedule         ScheduleView  `json:"schedule"`
}

type DateOptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func toMessageView(m model.Message, isSeller bool) MessageView {
	return MessageView{
		ID:               m.ID,
		Text:             m.Text,
		Sender:           string(m.Sender),
		TimestampDisplay: timeutil.FormatClock(m.Timestamp),
		Alignment:        string(m.Alignment(isSeller)),
	}
}

func toScheduleView(cv *model.Conversation) ScheduleView {
	d := cv.Draft
	if d == nil {
		return ScheduleView{}
	}
	v := ScheduleView{
		Open:            true,
		LocationNote:    d.LocationNote,
		DateError:       d.DateError(),
		TimeError:       d.TimeError(),
		TimePastWarning: d.TimePastWarning,
	}
	if d.Date != nil {
		v.DateLabel = timeutil.DateLabel(*d.Date, d.OpenedOn)
	}
	if d.Time != nil {
		v.TimeLabel = timeutil.FormatClock(*d.Time)
	}
	return v
}

func toSessionView(cv *model.Conversation) SessionView {
	msgs := make([]MessageView, 0, len(cv.Messages))
	for _, m := range cv.Messages {
		msgs = append(msgs, toMessageView(m, cv.IsSeller))
	}
	return SessionView{
		SessionID:        cv.ID.String(),
		IsSeller:         cv.IsSeller,
		CounterpartyName: cv.CounterpartyName,
		ProductTitle:     cv.ProductTitle,
		ProductPrice:     cv.ProductPrice,
		OfferAccepted:    cv.OfferAccepted,
		ComposeEnabled:   cv.ComposeEnabled(),
		CanAcceptOffer:   cv.CanAcceptOffer(),
		CanSchedule:      cv.CanSchedule(),
		Messages:         msgs,
		Schedule:         toScheduleView(cv),
	}
}

func toDateOptionViews(opts []service.DateOption) []DateOptionView {
	views := make([]DateOptionView, 0, len(opts))
	for _, o := range opts {
		views = append(views, DateOptionView{
			Value: o.Date.Format("2006-01-02"),
			Label: o.Label,
		})
	}
	return views
}
