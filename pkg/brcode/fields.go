package brcode

// Top-level EMV field ids used by static PIX codes.
const (
	IDPayloadFormat       = "00"
	IDMerchantAccountInfo = "26"
	IDMerchantCategory    = "52"
	IDCurrency            = "53"
	IDAmount              = "54"
	IDCountry             = "58"
	IDMerchantName        = "59"
	IDMerchantCity        = "60"
	IDAdditionalData      = "62"
	IDCRC                 = "63"
)

// Sub-field ids nested in the merchant account information (26) and
// additional data (62) templates.
const (
	IDAccountGUI         = "00"
	IDAccountKey         = "01"
	IDAccountDescription = "02"
	IDReferenceLabel     = "05"
)

const (
	PayloadFormat    = "01"
	PixGUI           = "br.gov.bcb.pix"
	MerchantCategory = "0000"
	CurrencyBRL      = "986"
	CountryBR        = "BR"

	// crcTrailer opens the checksum field; it is part of the checksummed data.
	crcTrailer = IDCRC + "04"
)

// Length budgets.
const (
	MaxMerchantNameLength  = 25
	MaxMerchantCityLength  = 15
	MaxDescriptionLength   = 25
	MaxTransactionIDLength = 25
	MaxPixKeyLength        = 77
	MaxAmountLength        = 13
	TransactionIDLength    = 10
	HiddenTransactionID    = "***"
)
