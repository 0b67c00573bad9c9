package models

import "strconv"

// Action identifies the gateway operation a TransactionRequest performs.
type Action string

const (
	ActionAuthorize Action = "authorize"
	ActionPurchase  Action = "purchase"
	ActionCapture   Action = "capture"
	ActionVoid      Action = "void"
	ActionRefund    Action = "refund"

	ActionProfileCreate   Action = "profile_create"
	ActionProfileUpdate   Action = "profile_update"
	ActionProfileRetrieve Action = "profile_retrieve"
	ActionProfileDelete   Action = "profile_delete"
)

// IsProfile reports whether the action is a customer-profile operation.
func (a Action) IsProfile() bool {
	switch a {
	case ActionProfileCreate, ActionProfileUpdate, ActionProfileRetrieve, ActionProfileDelete:
		return true
	}
	return false
}

// Money is an amount in minor units (cents). It is never a floating value;
// callers convert at the boundary and the gateway serializes the raw digits.
type Money int64

// String returns the decimal digit string the wire format expects,
// with no separator.
func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}

// Card holds payment card details for a transaction or profile.
type Card struct {
	Number            string
	ExpiryMonth       int
	ExpiryYear        int
	VerificationValue string
	HolderName        string
}

// Address is the billing address submitted for AVS checks and profiles.
type Address struct {
	Line1       string
	Line2       string
	City        string
	Region      string
	PostalCode  string
	CountryCode string
	Phone       string
	Name        string
}

// SoftDescriptor carries merchant-identifying text shown on the
// cardholder's statement. At most one of City/Phone/URL/Email is ever
// transmitted; the gateway adapter picks the first present in that order.
type SoftDescriptor struct {
	MerchantName       string
	ProductDescription string
	MerchantCity       string
	MerchantPhone      string
	MerchantURL        string
	MerchantEmail      string
}

// ProfileStatus is the lifecycle state of a stored customer profile.
type ProfileStatus string

const (
	ProfileStatusActive        ProfileStatus = "active"
	ProfileStatusInactive      ProfileStatus = "inactive"
	ProfileStatusManualSuspend ProfileStatus = "manual_suspend"
)

// TransactionRequest is the per-call input for every gateway operation,
// discriminated by Action. It is built by the caller, consumed once, and
// discarded; nothing in it is shared between calls.
type TransactionRequest struct {
	Action Action

	Amount Money
	// AdjustedAmount applies to voids only. Nil means a full void; the
	// adjusted-amount element is omitted rather than sent as zero.
	AdjustedAmount *Money

	// Currency is an ISO-4217 alpha code or ISO-3166 country code. When
	// empty, the billing address country and then the configured default
	// are used to resolve the numeric code.
	Currency string

	OrderID string
	Card    *Card
	Address *Address

	// CustomerRefNum links the call to a stored customer profile. A
	// transaction carrying a ref num and no card is profile-backed.
	CustomerRefNum string

	// RecurringInd must be "RF" (first) or "RS" (subsequent) when set.
	RecurringInd string

	SoftDescriptor *SoftDescriptor

	// PriorAuthID is the authorization id of the transaction being
	// captured, voided, or refunded.
	PriorAuthID string

	// TransactionIndex is the reference index for voids; "1" when unset.
	TransactionIndex string

	Comments string

	// Profile operation fields.
	ProfileStatus           ProfileStatus
	OrderOverrideInd        string
	OrderDefaultDescription string
	OrderDefaultAmount      *Money
}

// ProfileBacked reports whether the request is driven purely by a stored
// profile, with no card supplied.
func (r *TransactionRequest) ProfileBacked() bool {
	return r.Card == nil && r.CustomerRefNum != ""
}

// GatewayResponse is the normalized result of a single gateway call.
// RawFields is the flattened response document and is the authoritative
// record for audit logging; it is not mutated after parsing.
type GatewayResponse struct {
	RawFields       map[string]string
	Success         bool
	Message         string
	AuthorizationID string
	AVSCode         string
	CVVCode         string
	Test            bool
}
