// Package party holds the two parties of an invoice: the issuing company and
// the billed client. Serialized field names carry a "client"/"company" prefix
// at the JSON boundary only; the Go field names stay unprefixed.
package party

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NicDom/tia/pkg/sheet"
)

// Client is a billed party. The mail fields for invoice and reminder
// correspondence default to the official address.
type Client struct {
	Ref          string `json:"clientref" validate:"required,len=5,numeric"`
	Name         string `json:"clientname" validate:"required"`
	Street       string `json:"clientstreet" validate:"required"`
	PLZ          string `json:"clientplz" validate:"required"`
	City         string `json:"clientcity" validate:"required"`
	Country      string `json:"clientcountry" validate:"required"`
	Email        string `json:"clientemail" validate:"required,email"`
	InvoiceMail  string `json:"clientinvoicemail" validate:"omitempty,email"`
	ReminderMail string `json:"clientremindermail" validate:"omitempty,email"`
}

// Normalize fills the optional mail addresses from the official one.
func (c *Client) Normalize() {
	if c.InvoiceMail == "" {
		c.InvoiceMail = c.Email
	}
	if c.ReminderMail == "" {
		c.ReminderMail = c.Email
	}
}

// Validate normalizes and checks the client.
func (c *Client) Validate() error {
	c.Normalize()
	return sheet.ValidateStruct(*c)
}

// NewClient builds a validated client.
func NewClient(c Client) (Client, error) {
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	return c, nil
}

// UnmarshalJSON decodes the prefixed wire form and applies the mail defaults.
func (c *Client) UnmarshalJSON(data []byte) error {
	type alias Client
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Client(raw)
	c.Normalize()
	return nil
}

// Address returns the postal address block.
func (c Client) Address() string {
	return fmt.Sprintf("%s\n%s, %s\n%s", c.Street, c.PLZ, c.City, c.Country)
}

// ContactInformation returns the mail addresses block.
func (c Client) ContactInformation() string {
	return fmt.Sprintf("mail (official): %s\nmail (invoice): %s\nmail (reminder): %s",
		c.Email, c.InvoiceMail, c.ReminderMail)
}

// Compact returns the display blocks of the client.
func (c Client) Compact() []string {
	return []string{
		"Client_ID: " + c.Ref + "\n" + c.Name,
		c.Address(),
		c.ContactInformation(),
	}
}

// String renders the client for terminal display.
func (c Client) String() string {
	return strings.Join(c.Compact(), "\n\n")
}
