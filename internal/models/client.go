package models

import "time"

// Address is embedded in clients, projects and companies.
type Address struct {
	Street   string `json:"street,omitempty"`
	Number   int    `json:"number,omitempty"`
	Postal   string `json:"postal,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}

// Client is a counterparty owned by a single user. Archiving is a soft
// delete: archived clients keep their row but are excluded from listings.
type Client struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	CIF       string     `json:"cif"`
	Address   Address    `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
