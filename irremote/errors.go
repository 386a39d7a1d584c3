package irremote

import "errors"

var (
	ErrBusy                = errors.New("irremote: transmission in progress")
	ErrUnsupportedProtocol = errors.New("irremote: unsupported protocol")
	ErrTruncated           = errors.New("irremote: frame exceeds OTA edge limit")
	ErrNoSession           = errors.New("irremote: no transmission in progress")
	ErrInvalidCommand      = errors.New("irremote: invalid command")
)
