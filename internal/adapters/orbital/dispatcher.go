package orbital

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/samvincent/orbital-gateway/internal/adapters/ports"
	"github.com/samvincent/orbital-gateway/pkg/errors"
	"github.com/samvincent/orbital-gateway/pkg/observability"
)

// attempt is the explicit retry state for one call. It is threaded
// through the dispatch control flow instead of living in shared state,
// so concurrent calls never observe each other's failures.
type attempt int

const (
	attemptPrimary attempt = iota
	attemptSecondary
)

// dispatcher posts serialized request documents and owns the failover
// policy: a connection-level failure on the primary endpoint is retried
// exactly once against the secondary, and never again. Application-level
// declines come back as well-formed bodies and are not retried.
type dispatcher struct {
	endpoints Endpoints
	test      bool
	client    ports.HTTPClient
	logger    *zap.Logger
}

func newDispatcher(endpoints Endpoints, test bool, client ports.HTTPClient, logger *zap.Logger) *dispatcher {
	return &dispatcher{
		endpoints: endpoints,
		test:      test,
		client:    client,
		logger:    logger,
	}
}

func (d *dispatcher) url(a attempt) string {
	if d.test {
		if a == attemptSecondary {
			return d.endpoints.SecondaryTest
		}
		return d.endpoints.PrimaryTest
	}
	if a == attemptSecondary {
		return d.endpoints.SecondaryLive
	}
	return d.endpoints.PrimaryLive
}

// post sends the document, failing over once on a connection error.
func (d *dispatcher) post(ctx context.Context, body []byte) ([]byte, error) {
	raw, err := d.send(ctx, attemptPrimary, body)
	if err == nil {
		return raw, nil
	}

	d.logger.Warn("primary endpoint failed, retrying against secondary",
		zap.String("primary_url", d.url(attemptPrimary)),
		zap.Error(err),
	)
	observability.RecordFailover()

	raw, retryErr := d.send(ctx, attemptSecondary, body)
	if retryErr == nil {
		return raw, nil
	}
	return nil, retryErr
}

// send performs a single round trip. Transport errors, timeouts, and
// HTTP-level failures all classify as connection errors; a well-formed
// error response does not.
func (d *dispatcher) send(ctx context.Context, a attempt, body []byte) ([]byte, error) {
	url := d.url(a)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("MIME-Version", "1.0")
	req.Header.Set("Content-Type", "Application/PTI46")
	req.Header.Set("Content-transfer-encoding", "text")
	req.Header.Set("Request-number", "1")
	req.Header.Set("Document-type", "Request")
	req.Header.Set("Content-length", strconv.Itoa(len(body)))
	req.ContentLength = int64(len(body))

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.NewPaymentError("NETWORK_ERROR",
			fmt.Sprintf("failed to connect to gateway at %s", url),
			errors.CategoryNetworkError, true)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewPaymentError("NETWORK_ERROR",
			"failed to read gateway response", errors.CategoryNetworkError, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewPaymentError("GATEWAY_HTTP_ERROR",
			fmt.Sprintf("gateway returned HTTP %d", resp.StatusCode),
			errors.CategoryNetworkError, true)
	}

	return raw, nil
}
