package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// Project is a user-owned piece of work, independent of clients.
type Project struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (n NewProject) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return nil
}

type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p *Project) Apply(patch ProjectPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
}
