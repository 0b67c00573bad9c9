package orbital

import (
	"github.com/samvincent/orbital-gateway/internal/domain"
)

// Wire constants fixed by the gateway certification profile.
const (
	industryTypeEcommerce = "EC"
	bin                   = "000002"
	defaultTerminalID     = "001"
	currencyExponent      = "2"

	messageTypeAuth    = "A"
	messageTypeAuthCap = "AC"
	messageTypeRefund  = "R"
)

// Endpoints holds the four gateway URLs: primary/secondary crossed with
// test/live. The secondary of the active pair is used only for the
// single failover retry.
type Endpoints struct {
	PrimaryTest   string
	SecondaryTest string
	PrimaryLive   string
	SecondaryLive string
}

// DefaultEndpoints returns the certification and production URL pairs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		PrimaryTest:   "https://orbitalvar1.paymentech.net/authorize",
		SecondaryTest: "https://orbitalvar2.paymentech.net/authorize",
		PrimaryLive:   "https://orbital1.paymentech.net/authorize",
		SecondaryLive: "https://orbital2.paymentech.net/authorize",
	}
}

// Config is the immutable per-client gateway configuration. It is shared
// read-only by all concurrent calls; nothing mutates it after New.
type Config struct {
	// Login and Password are the connection credentials. They are
	// required unless the account authenticates by source IP.
	Login    string
	Password string

	MerchantID string
	// TerminalID defaults to "001".
	TerminalID string

	// IPAuthentication drops the credential elements from every request.
	IPAuthentication bool

	// CustomerProfiles enables the profile linkage block on orders.
	CustomerProfiles bool

	// DefaultCurrency is an alpha currency or country code used when a
	// request carries neither a currency nor an address country.
	DefaultCurrency string

	// TestMode selects the certification endpoints and marks responses.
	TestMode bool

	Endpoints Endpoints
}

// validate enforces the construction invariants: merchant id always,
// credentials unless IP authentication is in effect.
func (c *Config) validate() error {
	if c.MerchantID == "" {
		return domain.NewDomainError(domain.ErrorCodeConfigMissingMerchant, "merchant id is required")
	}
	if !c.IPAuthentication && (c.Login == "" || c.Password == "") {
		return domain.NewDomainError(domain.ErrorCodeConfigMissingCredentials,
			"login and password are required unless IP authentication is enabled")
	}
	return nil
}

func (c *Config) terminalID() string {
	if c.TerminalID == "" {
		return defaultTerminalID
	}
	return c.TerminalID
}
