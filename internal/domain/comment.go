package domain

import "time"

// Comment is one entry of a ticket's comment thread.
type Comment struct {
	ID        string
	Commenter string
	Date      string
	// At is Date parsed; zero when Date is empty or unparsable.
	At   time.Time
	Body string
}
