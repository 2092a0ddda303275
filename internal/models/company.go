package models

import "time"

// Company groups several user emails under one fiscal entity (unique CIF).
type Company struct {
	ID        int64     `json:"id"`
	Boss      string    `json:"boss,omitempty"`
	Emails    []string  `json:"emails"`
	Name      string    `json:"name"`
	CIF       string    `json:"cif"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
