package models

import "time"

// Project belongs to a user and a client. ProjectCode is unique per
// user+client pair. Soft-deletable like Client.
type Project struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ClientID    int64      `json:"client_id"`
	Name        string     `json:"name"`
	ProjectCode string     `json:"projectCode"`
	Address     Address    `json:"address"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
