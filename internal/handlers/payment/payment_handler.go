package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/samvincent/orbital-gateway/internal/cards"
	"github.com/samvincent/orbital-gateway/internal/domain"
	"github.com/samvincent/orbital-gateway/internal/domain/models"
	"github.com/samvincent/orbital-gateway/internal/domain/ports"
	pkgerrors "github.com/samvincent/orbital-gateway/pkg/errors"
)

// Handler exposes the gateway operations over HTTP JSON. Amounts cross
// the boundary as major-unit decimals and are converted to minor units
// here; the core only ever sees integers.
type Handler struct {
	gateway  ports.PaymentGateway
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a new payment handler
func NewHandler(gateway ports.PaymentGateway, logger *zap.Logger) *Handler {
	return &Handler{
		gateway:  gateway,
		logger:   logger,
		validate: validator.New(),
	}
}

// Routes mounts the payment and profile endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/payments/authorize", h.authorize)
	r.Post("/payments/purchase", h.purchase)
	r.Post("/payments/capture", h.capture)
	r.Post("/payments/refund", h.refund)
	r.Post("/payments/void", h.void)

	r.Post("/profiles", h.createProfile)
	r.Get("/profiles/{refNum}", h.retrieveProfile)
	r.Put("/profiles/{refNum}", h.updateProfile)
	r.Delete("/profiles/{refNum}", h.deleteProfile)
}

type cardPayload struct {
	Number            string `json:"number" validate:"required"`
	ExpiryMonth       int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear        int    `json:"expiry_year" validate:"required,min=1"`
	VerificationValue string `json:"verification_value"`
	HolderName        string `json:"holder_name"`
}

type addressPayload struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Name        string `json:"name"`
}

type softDescriptorPayload struct {
	MerchantName       string `json:"merchant_name" validate:"required"`
	ProductDescription string `json:"product_description" validate:"required"`
	MerchantCity       string `json:"merchant_city"`
	MerchantPhone      string `json:"merchant_phone"`
	MerchantURL        string `json:"merchant_url"`
	MerchantEmail      string `json:"merchant_email"`
}

type orderRequest struct {
	Amount         decimal.Decimal        `json:"amount" validate:"required"`
	Currency       string                 `json:"currency"`
	OrderID        string                 `json:"order_id"`
	Card           *cardPayload           `json:"card"`
	Address        *addressPayload        `json:"address"`
	CustomerRefNum string                 `json:"customer_ref_num"`
	RecurringInd   string                 `json:"recurring_ind"`
	Comments       string                 `json:"comments"`
	SoftDescriptor *softDescriptorPayload `json:"soft_descriptor"`
}

type referenceRequest struct {
	Amount           *decimal.Decimal `json:"amount"`
	Currency         string           `json:"currency"`
	OrderID          string           `json:"order_id"`
	AuthorizationID  string           `json:"authorization_id"`
	TransactionIndex string           `json:"transaction_index"`
	Card             *cardPayload     `json:"card"`
}

type profileRequest struct {
	CustomerRefNum          string           `json:"customer_ref_num"`
	Card                    *cardPayload     `json:"card"`
	Address                 *addressPayload  `json:"address"`
	Status                  string           `json:"status"`
	OrderOverrideInd        string           `json:"order_override_ind"`
	OrderDefaultDescription string           `json:"order_default_description"`
	OrderDefaultAmount      *decimal.Decimal `json:"order_default_amount"`
}

type gatewayResponsePayload struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	AuthorizationID string            `json:"authorization_id,omitempty"`
	AVSCode         string            `json:"avs_code,omitempty"`
	CVVCode         string            `json:"cvv_code,omitempty"`
	CustomerRefNum  string            `json:"customer_ref_num,omitempty"`
	Test            bool              `json:"test"`
	Fields          map[string]string `json:"fields"`
}

type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) {
	h.order(w, r, h.gateway.Authorize)
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	h.order(w, r, h.gateway.Purchase)
}

func (h *Handler) order(w http.ResponseWriter, r *http.Request, call gatewayCall) {
	var req orderRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Card == nil && req.CustomerRefNum == "" {
		h.writeError(w, http.StatusBadRequest, "card or customer_ref_num is required", "")
		return
	}
	if req.Card != nil && !cards.Luhn(req.Card.Number) {
		h.writeError(w, http.StatusBadRequest, "card number failed check digit validation", "")
		return
	}

	amount, err := toMinorUnits(req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	txn := &models.TransactionRequest{
		Amount:         amount,
		Currency:       req.Currency,
		OrderID:        req.OrderID,
		Card:           req.Card.toModel(),
		Address:        req.Address.toModel(),
		CustomerRefNum: req.CustomerRefNum,
		RecurringInd:   req.RecurringInd,
		Comments:       req.Comments,
		SoftDescriptor: req.SoftDescriptor.toModel(),
	}

	h.dispatch(w, r, txn, call)
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	var req referenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := optionalMinorUnits(req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	txn := &models.TransactionRequest{
		OrderID:     req.OrderID,
		PriorAuthID: req.AuthorizationID,
	}
	if amount != nil {
		txn.Amount = *amount
	}
	h.dispatch(w, r, txn, h.gateway.Capture)
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	var req referenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := optionalMinorUnits(req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	txn := &models.TransactionRequest{
		Currency:    req.Currency,
		OrderID:     req.OrderID,
		PriorAuthID: req.AuthorizationID,
		Card:        req.Card.toModel(),
	}
	if amount != nil {
		txn.Amount = *amount
	}
	h.dispatch(w, r, txn, h.gateway.Refund)
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	var req referenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.AuthorizationID == "" {
		h.writeError(w, http.StatusBadRequest, "authorization_id is required", "")
		return
	}
	// A void without an amount reverses the full authorization.
	adjusted, err := optionalMinorUnits(req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	txn := &models.TransactionRequest{
		OrderID:          req.OrderID,
		PriorAuthID:      req.AuthorizationID,
		TransactionIndex: req.TransactionIndex,
		AdjustedAmount:   adjusted,
	}
	h.dispatch(w, r, txn, h.gateway.Void)
}

func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !h.decode(w, r, &req) {
		return
	}
	txn, err := req.toModel("")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	h.dispatch(w, r, txn, h.gateway.CreateProfile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !h.decode(w, r, &req) {
		return
	}
	txn, err := req.toModel(chi.URLParam(r, "refNum"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	h.dispatch(w, r, txn, h.gateway.UpdateProfile)
}

func (h *Handler) retrieveProfile(w http.ResponseWriter, r *http.Request) {
	txn := &models.TransactionRequest{CustomerRefNum: chi.URLParam(r, "refNum")}
	h.dispatch(w, r, txn, h.gateway.RetrieveProfile)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	txn := &models.TransactionRequest{CustomerRefNum: chi.URLParam(r, "refNum")}
	h.dispatch(w, r, txn, h.gateway.DeleteProfile)
}

type gatewayCall func(ctx context.Context, req *models.TransactionRequest) (*models.GatewayResponse, error)

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", "")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "")
		return false
	}
	return true
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, txn *models.TransactionRequest, call gatewayCall) {
	resp, err := call(r.Context(), txn)
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}

	payload := gatewayResponsePayload{
		Success:         resp.Success,
		Message:         resp.Message,
		AuthorizationID: resp.AuthorizationID,
		AVSCode:         resp.AVSCode,
		CVVCode:         resp.CVVCode,
		CustomerRefNum:  resp.RawFields["customer_ref_num"],
		Test:            resp.Test,
		Fields:          resp.RawFields,
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) writeGatewayError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domain.IsConnectionError(err) {
			status = http.StatusBadGateway
		}
		h.writeError(w, status, domainErr.Message, string(domainErr.Code))
		return
	}

	var paymentErr *pkgerrors.PaymentError
	if errors.As(err, &paymentErr) {
		h.writeError(w, http.StatusBadGateway, paymentErr.Message, paymentErr.Code)
		return
	}

	h.logger.Error("unexpected gateway failure", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal error", "")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg, code string) {
	h.writeJSON(w, status, errorPayload{Error: msg, Code: code})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (c *cardPayload) toModel() *models.Card {
	if c == nil {
		return nil
	}
	return &models.Card{
		Number:            c.Number,
		ExpiryMonth:       c.ExpiryMonth,
		ExpiryYear:        c.ExpiryYear,
		VerificationValue: c.VerificationValue,
		HolderName:        c.HolderName,
	}
}

func (a *addressPayload) toModel() *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		Region:      a.Region,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Phone:       a.Phone,
		Name:        a.Name,
	}
}

func (s *softDescriptorPayload) toModel() *models.SoftDescriptor {
	if s == nil {
		return nil
	}
	return &models.SoftDescriptor{
		MerchantName:       s.MerchantName,
		ProductDescription: s.ProductDescription,
		MerchantCity:       s.MerchantCity,
		MerchantPhone:      s.MerchantPhone,
		MerchantURL:        s.MerchantURL,
		MerchantEmail:      s.MerchantEmail,
	}
}

func (p *profileRequest) toModel(refNum string) (*models.TransactionRequest, error) {
	if refNum == "" {
		refNum = p.CustomerRefNum
	}
	defaultAmount, err := optionalMinorUnits(p.OrderDefaultAmount)
	if err != nil {
		return nil, err
	}
	return &models.TransactionRequest{
		CustomerRefNum:          refNum,
		Card:                    p.Card.toModel(),
		Address:                 p.Address.toModel(),
		ProfileStatus:           models.ProfileStatus(p.Status),
		OrderOverrideInd:        p.OrderOverrideInd,
		OrderDefaultDescription: p.OrderDefaultDescription,
		OrderDefaultAmount:      defaultAmount,
	}, nil
}

// toMinorUnits converts a major-unit decimal (e.g. "1.00") to minor
// units. More than two decimal places is rejected rather than rounded.
func toMinorUnits(d decimal.Decimal) (models.Money, error) {
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, pkgerrors.NewValidationError("amount", "amount has more than two decimal places")
	}
	if shifted.IsNegative() {
		return 0, pkgerrors.NewValidationError("amount", "amount must not be negative")
	}
	return models.Money(shifted.IntPart()), nil
}

func optionalMinorUnits(d *decimal.Decimal) (*models.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := toMinorUnits(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
