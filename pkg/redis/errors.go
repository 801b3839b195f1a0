package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrParseConnectionURL = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: failed to connect")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
)
