package config

import "errors"

var (
	ErrNoSource     = errors.New("config: no configuration source named")
	ErrReadSource   = errors.New("config: failed to read configuration source")
	ErrDecodeSource = errors.New("config: failed to decode configuration")
)
