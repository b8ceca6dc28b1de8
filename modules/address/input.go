package address

// Input is an address submission as sent by a client.
type Input struct {
	Street   string `json:"street" form:"street"`
	City     string `json:"city" form:"city"`
	Username string `json:"username" form:"username"`
}

// Apply types the address into the editor and sets the username.
func (c *Composer) Apply(in Input) error {
	if err := c.Editor.Edit(Address{Street: in.Street, City: in.City}); err != nil {
		return err
	}
	return c.Username.SetValue(in.Username)
}
