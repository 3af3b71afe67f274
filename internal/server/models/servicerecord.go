package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// ServiceRecord is one maintenance visit performed on a pool.
type ServiceRecord struct {
	ID          int64     `json:"id"`
	PoolID      int64     `json:"pool_id"`
	Date        time.Time `json:"date"`
	ServiceType string    `json:"service_type"`
	Description string    `json:"description"`
	Value       string    `json:"value"`
	TimeSpent   string    `json:"time_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewServiceRecord struct {
	PoolID      int64      `json:"pool_id"`
	Date        *time.Time `json:"date,omitempty"`
	ServiceType string     `json:"service_type"`
	Description string     `json:"description"`
	Value       string     `json:"value"`
	TimeSpent   string     `json:"time_spent"`
}

func (n NewServiceRecord) Validate() error {
	if n.PoolID <= 0 {
		return fmt.Errorf("%w: pool_id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(n.ServiceType) == "" {
		return fmt.Errorf("%w: service_type is required", common.ErrorValidation)
	}
	return nil
}

// ServiceRecordPatch is a partial update. The pool cannot change.
type ServiceRecordPatch struct {
	Date        *time.Time `json:"date,omitempty"`
	ServiceType *string    `json:"service_type,omitempty"`
	Description *string    `json:"description,omitempty"`
	Value       *string    `json:"value,omitempty"`
	TimeSpent   *string    `json:"time_spent,omitempty"`
}

func (s *ServiceRecord) Apply(p ServiceRecordPatch) {
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.ServiceType != nil {
		s.ServiceType = *p.ServiceType
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Value != nil {
		s.Value = *p.Value
	}
	if p.TimeSpent != nil {
		s.TimeSpent = *p.TimeSpent
	}
}
