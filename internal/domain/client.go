package domain

// Client is the loan holder. Read-only from the engine's perspective.
type Client struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName returns the client's display name for emails and logs.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
