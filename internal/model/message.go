package model

import "time"

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderBuyer  Sender = "buyer"
	SenderSeller Sender = "seller"
)

// Alignment answers "is this bubble mine" for a given perspective.
type Alignment string

const (
	AlignmentOwn   Alignment = "own"
	AlignmentOther Alignment = "other"
)

type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Alignment returns the render side for a viewer with the given perspective.
// Sellers own seller bubbles and buyers own buyer bubbles, independent of
// who is literally speaking.
func (m Message) Alignment(isSeller bool) Alignment {
	if (isSeller && m.Sender == SenderSeller) || (!isSeller && m.Sender == SenderBuyer) {
		return AlignmentOwn
	}
	return AlignmentOther
}
