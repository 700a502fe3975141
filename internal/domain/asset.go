package domain

import "time"

type Asset struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	RegistrationNumber string    `json:"registration_number"`
	CreatedOn          time.Time `json:"created_on"`
}
