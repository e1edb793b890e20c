package domain

import "errors"

// Gateway failure sentinels. Lane operations wrap these; the transport
// boundary matches them with errors.Is to build the user-facing message.
var (
	ErrGatewayUnavailable = errors.New("gateway unavailable")
	ErrGatewayTimeout     = errors.New("gateway timeout")
)
