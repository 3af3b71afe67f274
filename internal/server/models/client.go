package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// Client is a customer of the company; owned directly by a user.
type Client struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CPFCNPJ   string    `json:"cpf_cnpj"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClient carries create input.
type NewClient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	CPFCNPJ string `json:"cpf_cnpj"`
}

func (n NewClient) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return nil
}

// ClientPatch is a partial client update.
type ClientPatch struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	CPFCNPJ  *string `json:"cpf_cnpj,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (c *Client) Apply(p ClientPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.CPFCNPJ != nil {
		c.CPFCNPJ = *p.CPFCNPJ
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}
