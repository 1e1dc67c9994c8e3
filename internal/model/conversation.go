package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionParams are the navigation parameters handed over by the host screen,
// read once at construction.
type SessionParams struct {
	IsSeller           bool    `json:"isSeller"`
	CounterpartyName   string  `json:"counterpartyName"`
	InitialOfferAmount float64 `json:"initialOfferAmount"`
	ProductTitle       string  `json:"productTitle"`
	ProductPrice       float64 `json:"productPrice"`
	OfferPreAccepted   bool    `json:"offerPreAccepted"`
}

// Conversation is the state of one mounted conversation screen: an
// append-only message timeline, the offer gate, and (while open) the
// schedule draft. It exclusively owns its message slice; callers outside
// the service layer only ever see copies.
type Conversation struct {
	sync.Mutex

	ID                 uuid.UUID
	IsSeller           bool
	CounterpartyName   string
	ProductTitle       string
	ProductPrice       float64
	InitialOfferAmount float64

	OfferAccepted bool
	Messages      []Message
	Draft         *ScheduleDraft

	CreatedAt  time.Time
	LastActive time.Time
}

// Append adds a message to the end of the timeline. The id is derived from
// the current length; valid because all appends on one session are
// serialized under the session lock.
func (c *Conversation) Append(text string, sender Sender, at time.Time) Message {
	msg := Message{
		ID:        len(c.Messages) + 1,
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// ComposeEnabled reports whether free-text composition is available.
func (c *Conversation) ComposeEnabled() bool {
	return c.OfferAccepted
}

// CanAcceptOffer reports whether the accept action is offered to the viewer.
func (c *Conversation) CanAcceptOffer() bool {
	return !c.IsSeller && !c.OfferAccepted
}

// CanSchedule reports whether the pickup scheduling modal is reachable.
func (c *Conversation) CanSchedule() bool {
	return c.IsSeller && c.OfferAccepted
}

// Clone returns a deep copy safe to hand to the presentation layer.
// Caller must hold the session lock.
func (c *Conversation) Clone() *Conversation {
	cp := &Conversation{
		ID:                 c.ID,
		IsSeller:           c.IsSeller,
		CounterpartyName:   c.CounterpartyName,
		ProductTitle:       c.ProductTitle,
		ProductPrice:       c.ProductPrice,
		InitialOfferAmount: c.InitialOfferAmount,
		OfferAccepted:      c.OfferAccepted,
		CreatedAt:          c.CreatedAt,
		LastActive:         c.LastActive,
	}
	cp.Messages = make([]Message, len(c.Messages))
	copy(cp.Messages, c.Messages)
	if c.Draft != nil {
		d := *c.Draft
		if c.Draft.Date != nil {
			date := *c.Draft.Date
			d.Date = &date
		}
		if c.Draft.Time != nil {
			tm := *c.Draft.Time
			d.Time = &tm
		}
		cp.Draft = &d
	}
	return cp
}
