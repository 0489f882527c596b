package players

// CreatePlayerInput is the payload for adding a player to the roster.
type CreatePlayerInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdatePlayerInput carries partial player updates. Nil fields are untouched.
type UpdatePlayerInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Active     *bool   `json:"active"`
	Registered *bool   `json:"registered"`
}
