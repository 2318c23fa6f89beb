package domain

import "time"

// AnonymousName is substituted when a visitor posts without a display name.
const AnonymousName = "Anonymous"

type Comment struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Msg      string    `json:"msg" db:"msg"`
	TS       time.Time `json:"ts" db:"ts"`
	Approved bool      `json:"approved" db:"approved"`
}

// CommentDTO is the wire representation; TS travels as epoch milliseconds
// so clients can do new Date(ts) directly.
type CommentDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Msg      string `json:"msg"`
	TS       int64  `json:"ts"`
	Approved bool   `json:"approved"`
}

func (c Comment) ToDTO() CommentDTO {
	return CommentDTO{
		ID:       c.ID,
		Name:     c.Name,
		Msg:      c.Msg,
		TS:       c.TS.UnixMilli(),
		Approved: c.Approved,
	}
}
