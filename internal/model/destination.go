package model

import "time"

// Destination is a region featured on the destinations page.
type Destination struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Region      string `yaml:"region"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required,max=120"`
	Email      string    `json:"email" validate:"required,email"`
	Message    string    `json:"message" validate:"required,max=5000"`
	ReceivedAt time.Time `json:"receivedAt"`
}
