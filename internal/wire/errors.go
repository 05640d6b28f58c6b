package wire

import "errors"

var (
	ErrBadPayloadLen = errors.New("wire: payload is not exactly 16 bytes")
)
