package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// AppSetting is a global key/value pair managed by superusers.
type AppSetting struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s AppSetting) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("%w: key is required", common.ErrorValidation)
	}
	return nil
}

type AppSettingPatch struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

func (s *AppSetting) Apply(p AppSettingPatch) {
	if p.Key != nil {
		s.Key = *p.Key
	}
	if p.Value != nil {
		s.Value = *p.Value
	}
}
