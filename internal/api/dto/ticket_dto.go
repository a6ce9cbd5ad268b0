package dto

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Sector             string `json:"sector"`
	User               string `json:"user"`
	Equipment          string `json:"equipment"`
	ProblemDescription string `json:"problemDescription"`
	Responsible        string `json:"responsible"`
}

// UpdateTicketRequest payload; absent fields are left untouched.
type UpdateTicketRequest struct {
	Sector             *string `json:"sector"`
	User               *string `json:"user"`
	Equipment          *string `json:"equipment"`
	ProblemDescription *string `json:"problemDescription"`
	Responsible        *string `json:"responsible"`
	Status             *string `json:"status"`
	ResolutionComment  *string `json:"resolutionComment"`
}

// RegisterUserRequest payload.
type RegisterUserRequest struct {
	Name string `json:"name"`
}
