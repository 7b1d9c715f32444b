package wage

import "errors"

var (
	ErrSettingNotFound = errors.New("wage setting not found")
)
