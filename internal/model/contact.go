package model

import "time"

type ContactStatus string

const (
	ContactStatusUnread  ContactStatus = "unread"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusUnread, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID         string        `db:"ID" json:"id"`
	CreatedAt  time.Time     `db:"CreatedAt" json:"createdAt"`
	Name       string        `db:"Name" json:"name"`
	Email      string        `db:"Email" json:"email"`
	Subjects   string        `db:"Subjects" json:"subjects"`
	Message    string        `db:"Message" json:"message"`
	Status     ContactStatus `db:"Status" json:"status"`
	AdminReply string        `db:"AdminReply" json:"adminReply"`
	RepliedAt  *time.Time    `db:"RepliedAt" json:"repliedAt,omitempty"`
}

type ContactSubmission struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}
