// AngelaMos | 2026
// entity.go

package quote

import "time"

// Request is an inbound sales inquiry left by an anonymous visitor.
type Request struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Organization string    `db:"organization"`
	Message      string    `db:"message"`
	CreatedAt    time.Time `db:"created_at"`
}
