package ports

import (
	"context"

	"github.com/samvincent/orbital-gateway/internal/domain/models"
)

// PaymentGateway is the synchronous interface produced by a gateway
// adapter. Every call returns a GatewayResponse, including declines and
// malformed replies; only pre-flight configuration and validation
// failures return an error instead.
type PaymentGateway interface {
	// Authorize places a hold without capturing funds.
	Authorize(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

	// Purchase authorizes and captures in a single call.
	Purchase(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

	// Capture settles a previously authorized transaction.
	Capture(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

	// Refund returns funds against a prior transaction.
	Refund(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

	// Void reverses an authorization; a nil adjusted amount voids in full.
	Void(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

	CreateProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)
	UpdateProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)
	RetrieveProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)
	DeleteProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)
}
