package orbital

import (
	"fmt"

	"github.com/samvincent/orbital-gateway/internal/cards"
	"github.com/samvincent/orbital-gateway/internal/currency"
	"github.com/samvincent/orbital-gateway/internal/domain"
	"github.com/samvincent/orbital-gateway/internal/domain/models"
)

// The builders in this file are pure: a validated request in, an ordered
// element tree out. Element order is a positional contract with the
// gateway; downstream validation is position-sensitive, so the order here
// must never be rearranged.

const maxOrderDescriptionLen = 64

// buildNewOrder emits the NewOrder document shared by authorize,
// purchase, and refund. messageType is "A", "AC", or "R".
func buildNewOrder(cfg *Config, req *models.TransactionRequest, messageType, currencyCode string) (element, error) {
	if req.RecurringInd != "" && req.RecurringInd != "RF" && req.RecurringInd != "RS" {
		return element{}, domain.NewDomainError(domain.ErrorCodeValidationRecurringInd,
			fmt.Sprintf("recurring indicator must be RF or RS, got %q", req.RecurringInd))
	}
	if req.SoftDescriptor != nil {
		if err := validateSoftDescriptor(req.SoftDescriptor); err != nil {
			return element{}, domain.WrapError(domain.ErrorCodeValidationFailed, "invalid soft descriptor", err)
		}
	}

	kids := credentialElements(cfg)
	kids = append(kids,
		el("IndustryType", industryTypeEcommerce),
		el("MessageType", messageType),
		el("BIN", bin),
		el("MerchantID", cfg.MerchantID),
		el("TerminalID", cfg.terminalID()),
	)

	if messageType == messageTypeRefund {
		// Refunds post against the prior transaction; the account number
		// element is kept as a placeholder, filled only when a card is
		// resubmitted.
		accountNum := ""
		if req.Card != nil {
			accountNum = cards.Normalize(req.Card.Number)
		}
		kids = append(kids,
			el("AccountNum", accountNum),
			el("CurrencyCode", currencyCode),
			el("CurrencyExponent", currencyExponent),
		)
	} else if req.Card != nil {
		kids = append(kids, cardElements(req.Card, currencyCode)...)
		if req.Address != nil {
			kids = append(kids, avsElements(req.Address)...)
		}
	} else {
		// Profile-backed orders still state the processing currency.
		kids = append(kids,
			el("CurrencyCode", currencyCode),
			el("CurrencyExponent", currencyExponent),
		)
	}

	if cfg.CustomerProfiles {
		kids = append(kids, customerElements(req)...)
	}

	if req.Comments != "" {
		kids = append(kids, el("Comments", req.Comments))
	}

	kids = append(kids,
		el("OrderID", req.OrderID),
		el("Amount", req.Amount.String()),
	)

	if req.RecurringInd != "" && currency.IsCanadian(currencyCode) {
		kids = append(kids, el("RecurringInd", req.RecurringInd))
	}

	if messageType == messageTypeRefund && req.PriorAuthID != "" {
		kids = append(kids, el("TxRefNum", req.PriorAuthID))
	}

	// Statement descriptors must close the document.
	if req.SoftDescriptor != nil {
		kids = append(kids, softDescriptorElements(req.SoftDescriptor)...)
	}

	return parent("Request", parent("NewOrder", kids...)), nil
}

// buildMarkForCapture settles a prior authorization by its TxRefNum.
// No validation is applied to the reference format at this layer; the
// gateway reports bad references in the response.
func buildMarkForCapture(cfg *Config, req *models.TransactionRequest) (element, error) {
	kids := credentialElements(cfg)
	kids = append(kids,
		el("OrderID", req.OrderID),
		el("Amount", req.Amount.String()),
		el("BIN", bin),
		el("MerchantID", cfg.MerchantID),
		el("TerminalID", cfg.terminalID()),
		el("TxRefNum", req.PriorAuthID),
	)
	return parent("Request", parent("MarkForCapture", kids...)), nil
}

// buildReversal voids a prior authorization. A nil adjusted amount means
// a full void and the AdjustedAmt element is omitted entirely.
func buildReversal(cfg *Config, req *models.TransactionRequest) (element, error) {
	idx := req.TransactionIndex
	if idx == "" {
		idx = "1"
	}
	kids := credentialElements(cfg)
	kids = append(kids,
		el("TxRefNum", req.PriorAuthID),
		el("TxRefIdx", idx),
	)
	if req.AdjustedAmount != nil {
		kids = append(kids, el("AdjustedAmt", req.AdjustedAmount.String()))
	}
	kids = append(kids,
		el("OrderID", req.OrderID),
		el("BIN", bin),
		el("MerchantID", cfg.MerchantID),
		el("TerminalID", cfg.terminalID()),
	)
	return parent("Request", parent("Reversal", kids...)), nil
}

var profileActionCodes = map[models.Action]string{
	models.ActionProfileCreate:   "C",
	models.ActionProfileRetrieve: "R",
	models.ActionProfileUpdate:   "U",
	models.ActionProfileDelete:   "D",
}

var profileStatusCodes = map[models.ProfileStatus]string{
	models.ProfileStatusActive:        "A",
	models.ProfileStatusInactive:      "I",
	models.ProfileStatusManualSuspend: "MS",
}

// buildProfile emits the Profile document for create/retrieve/update/
// delete. Card data is omitted for retrieve and delete.
func buildProfile(cfg *Config, req *models.TransactionRequest) (element, error) {
	overrideInd := req.OrderOverrideInd
	if overrideInd == "" {
		overrideInd = "NO"
	}
	switch overrideInd {
	case "NO", "OI", "OD", "OA":
	default:
		return element{}, domain.NewDomainError(domain.ErrorCodeValidationOverrideInd,
			fmt.Sprintf("order override indicator must be one of NO, OI, OD, OA, got %q", overrideInd))
	}

	create := req.Action == models.ActionProfileCreate
	mutating := create || req.Action == models.ActionProfileUpdate

	kids := credentialElements(cfg)
	kids = append(kids,
		el("CustomerBin", bin),
		el("CustomerMerchantID", cfg.MerchantID),
	)

	if req.Card != nil && req.Card.HolderName != "" {
		kids = append(kids, el("CustomerName", req.Card.HolderName))
	}
	if req.CustomerRefNum != "" {
		kids = append(kids, el("CustomerRefNum", req.CustomerRefNum))
	}
	if req.Address != nil {
		kids = append(kids, profileAddressElements(req.Address)...)
	}

	kids = append(kids,
		el("CustomerProfileAction", profileActionCodes[req.Action]),
		el("CustomerProfileOrderOverrideInd", overrideInd),
	)

	if create {
		// Source indicator: the gateway assigns the ref num unless the
		// caller supplied one.
		sourceInd := "A"
		if req.CustomerRefNum != "" {
			sourceInd = "S"
		}
		kids = append(kids, el("CustomerProfileFromOrderInd", sourceInd))
	}

	if req.OrderDefaultDescription != "" {
		desc := req.OrderDefaultDescription
		if len(desc) > maxOrderDescriptionLen {
			desc = desc[:maxOrderDescriptionLen]
		}
		kids = append(kids, el("OrderDefaultDescription", desc))
	}
	if req.OrderDefaultAmount != nil {
		kids = append(kids, el("OrderDefaultAmount", req.OrderDefaultAmount.String()))
	}

	if mutating {
		status := req.ProfileStatus
		if status == "" {
			status = models.ProfileStatusActive
		}
		code, ok := profileStatusCodes[status]
		if !ok {
			return element{}, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				fmt.Sprintf("unknown profile status %q", status))
		}
		kids = append(kids,
			el("CustomerAccountType", "CC"),
			el("Status", code),
		)
	}

	if mutating && req.Card != nil {
		kids = append(kids,
			el("CCAccountNum", cards.Normalize(req.Card.Number)),
			el("CCExpireDate", EncodeExpiry(req.Card.ExpiryMonth, req.Card.ExpiryYear)),
		)
	}

	return parent("Request", parent("Profile", kids...)), nil
}

// credentialElements emits the connection credentials, unless the
// account authenticates by source IP.
func credentialElements(cfg *Config) []element {
	if cfg.IPAuthentication {
		return nil
	}
	return []element{
		el("OrbitalConnectionUsername", cfg.Login),
		el("OrbitalConnectionPassword", cfg.Password),
	}
}

func cardElements(card *models.Card, currencyCode string) []element {
	out := []element{
		el("AccountNum", cards.Normalize(card.Number)),
		el("Exp", EncodeExpiry(card.ExpiryMonth, card.ExpiryYear)),
		el("CurrencyCode", currencyCode),
		el("CurrencyExponent", currencyExponent),
	}
	brand := cards.Classify(card.Number)
	if ind, ok := CardSecValIndicator(brand, card.VerificationValue != ""); ok {
		out = append(out, el("CardSecValInd", ind))
	}
	if card.VerificationValue != "" {
		out = append(out, el("CardSecVal", card.VerificationValue))
	}
	return out
}

// avsElements emits the AVS block. Callers skip it entirely when no
// address is on the request; the gateway rejects empty address elements.
func avsElements(addr *models.Address) []element {
	return []element{
		el("AVSzip", addr.PostalCode),
		el("AVSaddress1", addr.Line1),
		el("AVSaddress2", addr.Line2),
		el("AVScity", addr.City),
		el("AVSstate", addr.Region),
		el("AVSphoneNum", DigitsOnly(addr.Phone)),
		el("AVSname", addr.Name),
		el("AVScountryCode", addr.CountryCode),
	}
}

func profileAddressElements(addr *models.Address) []element {
	return []element{
		el("CustomerAddress1", addr.Line1),
		el("CustomerAddress2", addr.Line2),
		el("CustomerCity", addr.City),
		el("CustomerState", addr.Region),
		el("CustomerZIP", addr.PostalCode),
		el("CustomerPhone", DigitsOnly(addr.Phone)),
		el("CustomerCountryCode", addr.CountryCode),
	}
}

// customerElements links an order to a customer profile. A profile-backed
// transaction sends only the ref num; otherwise a supplied ref num is
// marked "use supplied" with the override indicator, and the absence of
// one requests auto-creation.
func customerElements(req *models.TransactionRequest) []element {
	if req.ProfileBacked() {
		return []element{el("CustomerRefNum", req.CustomerRefNum)}
	}
	if req.CustomerRefNum != "" {
		overrideInd := req.OrderOverrideInd
		if overrideInd == "" {
			overrideInd = "NO"
		}
		return []element{
			el("CustomerProfileFromOrderInd", "S"),
			el("CustomerRefNum", req.CustomerRefNum),
			el("CustomerProfileOrderOverrideInd", overrideInd),
		}
	}
	return []element{el("CustomerProfileFromOrderInd", "A")}
}
