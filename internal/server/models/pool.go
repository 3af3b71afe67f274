package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// Pool belongs to a client.
type Pool struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Volume    int       `json:"volume"`
	PoolType  string    `json:"pool_type"`
	Coating   string    `json:"coating"`
	Depth     string    `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewPool struct {
	ClientID int64  `json:"client_id"`
	Volume   int    `json:"volume"`
	PoolType string `json:"pool_type"`
	Coating  string `json:"coating"`
	Depth    string `json:"depth"`
}

func (n NewPool) Validate() error {
	if n.ClientID <= 0 {
		return fmt.Errorf("%w: client_id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(n.PoolType) == "" {
		return fmt.Errorf("%w: pool_type is required", common.ErrorValidation)
	}
	return nil
}

// PoolPatch is a partial pool update. The owning client cannot change.
type PoolPatch struct {
	Volume   *int    `json:"volume,omitempty"`
	PoolType *string `json:"pool_type,omitempty"`
	Coating  *string `json:"coating,omitempty"`
	Depth    *string `json:"depth,omitempty"`
}

func (p *Pool) Apply(patch PoolPatch) {
	if patch.Volume != nil {
		p.Volume = *patch.Volume
	}
	if patch.PoolType != nil {
		p.PoolType = *patch.PoolType
	}
	if patch.Coating != nil {
		p.Coating = *patch.Coating
	}
	if patch.Depth != nil {
		p.Depth = *patch.Depth
	}
}
