// AngelaMos | 2026
// dto.go

package quote

import "time"

type CreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Organization string `json:"organization" validate:"max=200"`
	Message      string `json:"message" validate:"required,max=2000"`
}

type Response struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization,omitempty"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(q *Request) Response {
	return Response{
		ID:           q.ID,
		Name:         q.Name,
		Email:        q.Email,
		Organization: q.Organization,
		Message:      q.Message,
		CreatedAt:    q.CreatedAt,
	}
}
