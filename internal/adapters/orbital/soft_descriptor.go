package orbital

import (
	"github.com/samvincent/orbital-gateway/internal/domain/models"
	pkgerrors "github.com/samvincent/orbital-gateway/pkg/errors"
)

// validateSoftDescriptor checks the merchant-supplied statement text.
// Merchant name and product description are required whenever a
// descriptor is attached.
func validateSoftDescriptor(sd *models.SoftDescriptor) error {
	if sd.MerchantName == "" {
		return pkgerrors.NewValidationError("merchant_name", "soft descriptor merchant name is required")
	}
	if sd.ProductDescription == "" {
		return pkgerrors.NewValidationError("product_description", "soft descriptor product description is required")
	}
	return nil
}

// softDescriptorElements emits the statement block. The block is always
// placed last in a NewOrder document. Of the four optional contact
// fields the gateway accepts exactly one; the first present wins, in
// the order city, phone, url, email.
func softDescriptorElements(sd *models.SoftDescriptor) []element {
	out := []element{
		el("SDMerchantName", sd.MerchantName),
		el("SDProductDescription", sd.ProductDescription),
	}
	switch {
	case sd.MerchantCity != "":
		out = append(out, el("SDMerchantCity", sd.MerchantCity))
	case sd.MerchantPhone != "":
		out = append(out, el("SDMerchantPhone", DigitsOnly(sd.MerchantPhone)))
	case sd.MerchantURL != "":
		out = append(out, el("SDMerchantURL", sd.MerchantURL))
	case sd.MerchantEmail != "":
		out = append(out, el("SDMerchantEmail", sd.MerchantEmail))
	}
	return out
}
