package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// BudgetStatusOpen is the status of a freshly created budget.
const BudgetStatusOpen = "Open"

// Budget is a quote issued to a client. Items is opaque JSON text.
type Budget struct {
	ID        int64      `json:"id"`
	ClientID  int64      `json:"client_id"`
	Date      time.Time  `json:"date"`
	Items     string     `json:"items"`
	Total     string     `json:"total"`
	Status    string     `json:"status"`
	Validity  *time.Time `json:"validity"`
	CreatedAt time.Time  `json:"created_at"`
}

type NewBudget struct {
	ClientID int64      `json:"client_id"`
	Date     *time.Time `json:"date,omitempty"`
	Items    string     `json:"items"`
	Total    string     `json:"total"`
	Status   string     `json:"status"`
	Validity *time.Time `json:"validity,omitempty"`
}

func (n NewBudget) Validate() error {
	if n.ClientID <= 0 {
		return fmt.Errorf("%w: client_id is required", common.ErrorValidation)
	}
	return nil
}

// BudgetPatch is a partial update. The client cannot change.
type BudgetPatch struct {
	Date     *time.Time `json:"date,omitempty"`
	Items    *string    `json:"items,omitempty"`
	Total    *string    `json:"total,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Validity *time.Time `json:"validity,omitempty"`
}

func (b *Budget) Apply(p BudgetPatch) {
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Items != nil {
		b.Items = *p.Items
	}
	if p.Total != nil {
		b.Total = *p.Total
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Validity != nil {
		v := *p.Validity
		b.Validity = &v
	}
}
