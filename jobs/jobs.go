package jobs

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Type string

const (
	TypeApprovalReminder       Type = "approval_reminder"
	TypePendingApprovalsDigest Type = "pending_approvals_digest"
)

type Job struct {
	Type     Type   `mapstructure:"type"`
	Enabled  bool   `mapstructure:"enabled"`
	Interval string `mapstructure:"interval"`
	Config   Config `mapstructure:"config"`
}

// Config holds the raw job configuration, decoded by each job into its own struct
type Config map[string]interface{}

func (c Config) Decode(v interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			stringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	return decoder.Decode(c)
}

func stringToTimeHookFunc(layout string) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		return time.Parse(layout, data.(string))
	}
}
