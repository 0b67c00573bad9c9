package orbital

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const approvedPurchaseResponse = `<?xml version="1.0" encoding="UTF-8"?><Response><NewOrderResp><IndustryType></IndustryType><MessageType>AC</MessageType><MerchantID>700000000000</MerchantID><TerminalID>001</TerminalID><CardBrand>MC</CardBrand><AccountNum>4111111111111111</AccountNum><OrderID>1</OrderID><TxRefNum>4A5398CF9B87744GG84A1D30F2F2321C66249416</TxRefNum><TxRefIdx>1</TxRefIdx><ProcStatus>0</ProcStatus><ApprovalStatus>1</ApprovalStatus><RespCode>00</RespCode><AVSRespCode>B</AVSRespCode><CVV2RespCode>M</CVV2RespCode><AuthCode>tst554</AuthCode><RecurringAdviceCd></RecurringAdviceCd><CAVVRespCode></CAVVRespCode><StatusMsg>Approved</StatusMsg><RespMsg></RespMsg><HostRespCode>100</HostRespCode><HostAVSRespCode>I3</HostAVSRespCode><HostCVV2RespCode>M</HostCVV2RespCode><CustomerRefNum>A1B2C3D4E5</CustomerRefNum><CustomerName>Longbob Longsen</CustomerName><ProfileProcStatus>0</ProfileProcStatus><CustomerProfileMessage>Profile Created</CustomerProfileMessage><RespTime>121825</RespTime></NewOrderResp></Response>`

const declinedPurchaseResponse = `<?xml version="1.0" encoding="UTF-8"?><Response><NewOrderResp><IndustryType></IndustryType><MessageType>AC</MessageType><MerchantID>700000000000</MerchantID><TerminalID>001</TerminalID><CardBrand>MC</CardBrand><AccountNum>4000300011112220</AccountNum><OrderID>1</OrderID><TxRefNum>4A5398CF9B87744GG84A1D30F2F2321C66249416</TxRefNum><TxRefIdx>0</TxRefIdx><ProcStatus>19784</ProcStatus><ApprovalStatus>0</ApprovalStatus><RespCode></RespCode><AVSRespCode></AVSRespCode><CVV2RespCode></CVV2RespCode><AuthCode></AuthCode><RecurringAdviceCd></RecurringAdviceCd><CAVVRespCode></CAVVRespCode><StatusMsg>Bad data error</StatusMsg><RespMsg></RespMsg><HostRespCode></HostRespCode><HostAVSRespCode></HostAVSRespCode><HostCVV2RespCode></HostCVV2RespCode><RespTime></RespTime></NewOrderResp></Response>`

const profileCreatedResponse = `<?xml version="1.0" encoding="UTF-8"?><Response><ProfileResp><CustomerBin>000002</CustomerBin><CustomerMerchantID>700000000000</CustomerMerchantID><CustomerName>Longbob Longsen</CustomerName><CustomerRefNum>ABC</CustomerRefNum><CustomerProfileAction>CREATE</CustomerProfileAction><ProfileProcStatus>0</ProfileProcStatus><CustomerProfileMessage>Profile Request Processed</CustomerProfileMessage><CCAccountNum>4111111111111111</CCAccountNum><CCExpireDate>0911</CCExpireDate></ProfileResp></Response>`

func TestParseResponse_ApprovedPurchase(t *testing.T) {
	fields := parseResponse([]byte(approvedPurchaseResponse))

	assert.Equal(t, "0", fields["proc_status"])
	assert.Equal(t, "00", fields["resp_code"])
	assert.Equal(t, "Approved", fields["status_msg"])
	assert.Equal(t, "4A5398CF9B87744GG84A1D30F2F2321C66249416", fields["tx_ref_num"])
	assert.Equal(t, "B", fields["avs_resp_code"])
	assert.Equal(t, "M", fields["cvv2_resp_code"])
	assert.Equal(t, "tst554", fields["auth_code"])
	assert.Equal(t, "A1B2C3D4E5", fields["customer_ref_num"])
	assert.Equal(t, "Profile Created", fields["customer_profile_message"])
	// Empty leaves are still recorded.
	v, ok := fields["resp_msg"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
	// The wrapper element itself never becomes a key.
	_, ok = fields["new_order_resp"]
	assert.False(t, ok)
}

func TestParseResponse_DeclinedPurchase(t *testing.T) {
	fields := parseResponse([]byte(declinedPurchaseResponse))
	assert.Equal(t, "19784", fields["proc_status"])
	assert.Equal(t, "Bad data error", fields["status_msg"])
	assert.Equal(t, "", fields["resp_code"])
}

func TestParseResponse_ProfileCreated(t *testing.T) {
	fields := parseResponse([]byte(profileCreatedResponse))
	assert.Equal(t, "0", fields["profile_proc_status"])
	assert.Equal(t, "Profile Request Processed", fields["customer_profile_message"])
	assert.Equal(t, "ABC", fields["customer_ref_num"])
	assert.Equal(t, "0911", fields["cc_expire_date"])
	assert.Equal(t, "4111111111111111", fields["cc_account_num"])
}

func TestParseResponse_ErrorRoot(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?><ErrorResponse><ProcStatus>9581</ProcStatus><StatusMsg>Invalid message format</StatusMsg></ErrorResponse>`
	fields := parseResponse([]byte(body))
	assert.Equal(t, "9581", fields["proc_status"])
	assert.Equal(t, "Invalid message format", fields["status_msg"])
}

func TestParseResponse_UnknownRootYieldsEmptyMap(t *testing.T) {
	fields := parseResponse([]byte(`<Unexpected><ProcStatus>0</ProcStatus></Unexpected>`))
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}

func TestParseResponse_MalformedBodyYieldsEmptyMap(t *testing.T) {
	assert.Empty(t, parseResponse([]byte("<html>502 Bad Gateway")))
	assert.Empty(t, parseResponse(nil))
}

func TestParseResponse_DuplicateTagLastWins(t *testing.T) {
	body := `<Response><NewOrderResp><ProcStatus>1</ProcStatus><ProcStatus>0</ProcStatus></NewOrderResp></Response>`
	fields := parseResponse([]byte(body))
	assert.Equal(t, "0", fields["proc_status"])
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"ProcStatus":             "proc_status",
		"RespCode":               "resp_code",
		"AVSRespCode":            "avs_resp_code",
		"CVV2RespCode":           "cvv2_resp_code",
		"TxRefNum":               "tx_ref_num",
		"TxRefIdx":               "tx_ref_idx",
		"CustomerProfileMessage": "customer_profile_message",
		"HostAVSRespCode":        "host_avs_resp_code",
		"CCExpireDate":           "cc_expire_date",
		"StatusMsg":              "status_msg",
		"BIN":                    "bin",
		"OrderID":                "order_id",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in), "snakeCase(%s)", in)
	}
}
