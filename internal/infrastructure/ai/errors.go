package ai

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/kunalverma/axon-go/internal/domain"
)

// wrapGatewayErr maps transport failures onto the domain sentinels so lane
// boundaries can distinguish timeouts from plain unavailability.
func wrapGatewayErr(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", name, err, domain.ErrGatewayTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %v: %w", name, err, domain.ErrGatewayTimeout)
	}
	return fmt.Errorf("%s: %v: %w", name, err, domain.ErrGatewayUnavailable)
}

// statusErr flags a non-2xx provider response as unavailability.
func statusErr(name, status string) error {
	return fmt.Errorf("%s: %s: %w", name, status, domain.ErrGatewayUnavailable)
}
