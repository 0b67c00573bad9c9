package orbital

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/samvincent/orbital-gateway/internal/adapters/ports"
	"github.com/samvincent/orbital-gateway/internal/domain"
	"github.com/samvincent/orbital-gateway/internal/domain/models"
	domainports "github.com/samvincent/orbital-gateway/internal/domain/ports"
	"github.com/samvincent/orbital-gateway/internal/util"
	"github.com/samvincent/orbital-gateway/pkg/observability"
)

// Adapter implements the PaymentGateway port against the Orbital
// Paymentech XML protocol. The adapter holds only immutable
// configuration and a pooled HTTP client, so it is safe for concurrent
// use; every call builds its own document and parses its own response.
type Adapter struct {
	cfg        *Config
	dispatcher *dispatcher
	logger     *zap.Logger
}

// New validates the configuration and returns a ready adapter. Missing
// merchant id, or missing credentials without IP authentication, fail
// here rather than on the first call.
func New(cfg Config, client ports.HTTPClient, logger *zap.Logger) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Endpoints == (Endpoints{}) {
		cfg.Endpoints = DefaultEndpoints()
	}
	return &Adapter{
		cfg:        &cfg,
		dispatcher: newDispatcher(cfg.Endpoints, cfg.TestMode, client, logger),
		logger:     logger,
	}, nil
}

var _ domainports.PaymentGateway = (*Adapter)(nil)

// Authorize places a hold without capturing funds.
func (a *Adapter) Authorize(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionAuthorize
	return a.commit(ctx, req)
}

// Purchase authorizes and captures in a single call.
func (a *Adapter) Purchase(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionPurchase
	return a.commit(ctx, req)
}

// Capture settles a previously authorized transaction by its
// authorization id.
func (a *Adapter) Capture(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionCapture
	return a.commit(ctx, req)
}

// Refund returns funds against a prior transaction.
func (a *Adapter) Refund(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionRefund
	return a.commit(ctx, req)
}

// Void reverses an authorization. A nil AdjustedAmount voids in full.
func (a *Adapter) Void(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionVoid
	return a.commit(ctx, req)
}

// CreateProfile stores a card and address under a customer ref num,
// gateway-assigned when the request does not supply one.
func (a *Adapter) CreateProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionProfileCreate
	return a.commit(ctx, req)
}

// UpdateProfile rewrites a stored profile.
func (a *Adapter) UpdateProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionProfileUpdate
	return a.commit(ctx, req)
}

// RetrieveProfile reads a stored profile.
func (a *Adapter) RetrieveProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionProfileRetrieve
	return a.commit(ctx, req)
}

// DeleteProfile removes a stored profile.
func (a *Adapter) DeleteProfile(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	req.Action = models.ActionProfileDelete
	return a.commit(ctx, req)
}

// commit runs the shared pipeline: build the ordered document, post it
// with failover, flatten the reply, classify the outcome.
func (a *Adapter) commit(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error) {
	a.normalizeOrderID(req)

	doc, err := a.build(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := a.dispatcher.post(ctx, serialize(doc))
	if err != nil {
		observability.RecordGatewayError(string(req.Action))
		a.logger.Error("gateway call failed",
			zap.String("action", string(req.Action)),
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		return nil, err
	}

	fields := parseResponse(raw)
	resp := a.classify(req.Action, fields)

	observability.RecordGatewayRequest(string(req.Action), resp.Success, time.Since(start))
	a.logger.Info("gateway call completed",
		zap.String("action", string(req.Action)),
		zap.String("order_id", req.OrderID),
		zap.Bool("success", resp.Success),
		zap.String("proc_status", fields["proc_status"]),
		zap.String("resp_code", fields["resp_code"]),
		zap.String("tx_ref_num", fields["tx_ref_num"]),
	)

	return resp, nil
}

func (a *Adapter) build(req *models.TransactionRequest) (element, error) {
	switch req.Action {
	case models.ActionAuthorize:
		code, err := a.resolveCurrency(req)
		if err != nil {
			return element{}, err
		}
		return buildNewOrder(a.cfg, req, messageTypeAuth, code)
	case models.ActionPurchase:
		code, err := a.resolveCurrency(req)
		if err != nil {
			return element{}, err
		}
		return buildNewOrder(a.cfg, req, messageTypeAuthCap, code)
	case models.ActionRefund:
		code, err := a.resolveCurrency(req)
		if err != nil {
			return element{}, err
		}
		return buildNewOrder(a.cfg, req, messageTypeRefund, code)
	case models.ActionCapture:
		return buildMarkForCapture(a.cfg, req)
	case models.ActionVoid:
		return buildReversal(a.cfg, req)
	case models.ActionProfileCreate, models.ActionProfileUpdate,
		models.ActionProfileRetrieve, models.ActionProfileDelete:
		return buildProfile(a.cfg, req)
	default:
		return element{}, domain.NewDomainError(domain.ErrorCodeValidationFailed,
			fmt.Sprintf("unknown action %q", req.Action))
	}
}

// resolveCurrency picks the request currency, then the billing address
// country, then the configured default.
func (a *Adapter) resolveCurrency(req *models.TransactionRequest) (string, error) {
	code := req.Currency
	if code == "" && req.Address != nil {
		code = req.Address.CountryCode
	}
	return EncodeCurrency(code, a.cfg.DefaultCurrency)
}

func (a *Adapter) normalizeOrderID(req *models.TransactionRequest) {
	if req.OrderID == "" {
		req.OrderID = util.NewOrderNumber()
	}
	req.OrderID = util.TruncateOrderID(req.OrderID)
}

// classify applies the gateway's success rules. Three branches are
// mutually exclusive by action: refunds check the processor status only,
// profile operations check the profile processor status only, and
// everything else requires both the processor status and the issuer
// response code to pass.
func (a *Adapter) classify(action models.Action, fields map[string]string) *models.GatewayResponse {
	var success bool
	switch {
	case action == models.ActionRefund:
		success = fields["proc_status"] == "0"
	case action.IsProfile():
		success = fields["profile_proc_status"] == "0"
	default:
		success = fields["proc_status"] == "0" && fields["resp_code"] == "00"
	}

	message := fields["resp_msg"]
	if message == "" {
		message = fields["status_msg"]
	}
	if message == "" {
		message = fields["customer_profile_message"]
	}
	if len(fields) == 0 {
		// Neither known root was found: a malformed body reads as a
		// decline, not an exception.
		message = "invalid gateway response"
	}

	return &models.GatewayResponse{
		RawFields:       fields,
		Success:         success,
		Message:         message,
		AuthorizationID: fields["tx_ref_num"],
		AVSCode:         fields["avs_resp_code"],
		CVVCode:         fields["cvv2_resp_code"],
		Test:            a.cfg.TestMode,
	}
}
