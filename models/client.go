package models

// Client wraps a Person (by document) with a password and the authoritative
// list of account numbers it owns. Accounts live independently in the account
// store; the client only references them.
type Client struct {
	Document       string  `json:"document"`
	Password       string  `json:"password"`
	AccountNumbers []int64 `json:"accounts"`
}

func NewClient(document, password string) *Client {
	return &Client{
		Document:       document,
		Password:       password,
		AccountNumbers: []int64{},
	}
}

// VerifyPassword is the single place passwords are compared. The comparison is
// plain equality; swapping in a salted hash only needs to touch this function.
func (c *Client) VerifyPassword(password string) bool {
	return c.Password == password
}

func (c *Client) HasAccount(number int64) bool {
	for _, n := range c.AccountNumbers {
		if n == number {
			return true
		}
	}
	return false
}

func (c *Client) AddAccount(number int64) {
	c.AccountNumbers = append(c.AccountNumbers, number)
}
