package orbital

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "github.com/samvincent/orbital-gateway/pkg/errors"
	"github.com/samvincent/orbital-gateway/test/mocks"
)

func testDispatcher(client *mocks.MockHTTPClient) *dispatcher {
	return newDispatcher(DefaultEndpoints(), true, client, zap.NewNop())
}

func TestDispatcher_SuccessNoRetry(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return mocks.XMLResponse("<Response></Response>"), nil
	})
	d := testDispatcher(client)

	raw, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.NoError(t, err)
	assert.Equal(t, "<Response></Response>", string(raw))
	require.Len(t, client.Calls, 1)
	assert.Equal(t, DefaultEndpoints().PrimaryTest, client.Calls[0].URL.String())
}

func TestDispatcher_FailsOverOnceOnConnectionError(t *testing.T) {
	attempts := 0
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return mocks.XMLResponse("<Response><ProcStatus>0</ProcStatus></Response>"), nil
	})
	d := testDispatcher(client)

	raw, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ProcStatus")
	require.Len(t, client.Calls, 2)
	assert.Equal(t, DefaultEndpoints().PrimaryTest, client.Calls[0].URL.String())
	assert.Equal(t, DefaultEndpoints().SecondaryTest, client.Calls[1].URL.String())
}

func TestDispatcher_SecondFailureSurfaces(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	d := testDispatcher(client)

	_, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.Error(t, err)
	// Exactly one retry: primary then secondary, never a third attempt.
	assert.Len(t, client.Calls, 2)

	var perr *pkgerrors.PaymentError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "NETWORK_ERROR", perr.Code)
	assert.Equal(t, pkgerrors.CategoryNetworkError, perr.Category)
	assert.True(t, perr.IsRetriable)
}

func TestDispatcher_HTTPErrorTriggersFailover(t *testing.T) {
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() == DefaultEndpoints().PrimaryTest {
			return &http.Response{StatusCode: 502, Body: http.NoBody, Header: make(http.Header)}, nil
		}
		return mocks.XMLResponse("<Response></Response>"), nil
	})
	d := testDispatcher(client)

	_, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.NoError(t, err)
	assert.Len(t, client.Calls, 2)
}

func TestDispatcher_DeclineBodyIsNotRetried(t *testing.T) {
	// An application-level decline is a well-formed 200 body; the
	// dispatcher must hand it back untouched without failing over.
	client := mocks.NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return mocks.XMLResponse("<Response><ProcStatus>19784</ProcStatus></Response>"), nil
	})
	d := testDispatcher(client)

	raw, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "19784")
	assert.Len(t, client.Calls, 1)
}

func TestDispatcher_RequestHeaders(t *testing.T) {
	client := mocks.NewMockHTTPClient(nil)
	d := testDispatcher(client)

	body := []byte("<Request><NewOrder></NewOrder></Request>")
	_, err := d.post(context.Background(), body)
	require.NoError(t, err)

	require.Len(t, client.Calls, 1)
	req := client.Calls[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "1.0", req.Header.Get("MIME-Version"))
	assert.Equal(t, "Application/PTI46", req.Header.Get("Content-Type"))
	assert.Equal(t, "text", req.Header.Get("Content-transfer-encoding"))
	assert.Equal(t, "1", req.Header.Get("Request-number"))
	assert.Equal(t, "Request", req.Header.Get("Document-type"))
	assert.Equal(t, int64(len(body)), req.ContentLength)
	assert.Equal(t, string(body), client.Bodies[0])
}

func TestDispatcher_LiveEndpoints(t *testing.T) {
	client := mocks.NewMockHTTPClient(nil)
	d := newDispatcher(DefaultEndpoints(), false, client, zap.NewNop())

	_, err := d.post(context.Background(), []byte("<Request></Request>"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoints().PrimaryLive, client.Calls[0].URL.String())
}
