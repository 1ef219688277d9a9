package brcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var transactionIDRe = regexp.MustCompile(`^[A-Za-z0-9]{1,25}$`)

// Request carries the per-call inputs of a code. An empty Description omits
// sub-field 02.
type Request struct {
	Amount        int64 // centavos
	Description   string
	TransactionID string
}

// Result is a freshly built code together with the inputs needed to
// reproduce it.
type Result struct {
	PixKey        string
	PixCode       string
	TransactionID string
	Amount        int64 // centavos
	Description   string
}

// Builder assembles BR Codes for a single merchant.
type Builder struct {
	merchant Merchant
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the time source used to derive new transaction ids.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder validates m and returns a Builder bound to it.
func NewBuilder(m Merchant, opts ...Option) (*Builder, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{merchant: m, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Merchant returns the profile the builder issues codes for.
func (b *Builder) Merchant() Merchant {
	return b.merchant
}

// Generate builds a new code with a transaction id derived from the clock.
func (b *Builder) Generate(amount int64, description string) (*Result, error) {
	return b.Build(Request{Amount: amount, Description: description, TransactionID: b.NewTransactionID()})
}

// Regenerate rebuilds the code for a stored transaction id. It never invents
// an id: identical inputs always produce the identical code. The placeholder
// HiddenTransactionID is accepted.
func (b *Builder) Regenerate(amount int64, description, transactionID string) (*Result, error) {
	return b.Build(Request{Amount: amount, Description: description, TransactionID: transactionID})
}

// NewTransactionID returns the last 10 digits of the current Unix time in
// milliseconds.
func (b *Builder) NewTransactionID() string {
	s := strconv.FormatInt(b.now().UnixMilli(), 10)
	if len(s) > TransactionIDLength {
		return s[len(s)-TransactionIDLength:]
	}
	return strings.Repeat("0", TransactionIDLength-len(s)) + s
}

// ValidTransactionID reports whether id fits the reference label field:
// alphanumeric, or exactly the HiddenTransactionID placeholder.
func ValidTransactionID(id string) bool {
	return id == HiddenTransactionID || transactionIDRe.MatchString(id)
}

// Build assembles the code for req. The transaction id must already be set.
func (b *Builder) Build(req Request) (*Result, error) {
	amount, description, transactionID := req.Amount, req.Description, req.TransactionID
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !IsASCII(description) {
		return nil, &FieldError{ID: IDAccountDescription, Name: "description", Length: len(description), Max: MaxDescriptionLength, NonASCII: true}
	}
	if len(description) > MaxDescriptionLength {
		return nil, &FieldError{ID: IDAccountDescription, Name: "description", Length: len(description), Max: MaxDescriptionLength}
	}
	if !ValidTransactionID(transactionID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionID, transactionID)
	}

	formatted := FormatAmount(amount)
	if len(formatted) > MaxAmountLength {
		return nil, &FieldError{ID: IDAmount, Name: "amount", Length: len(formatted), Max: MaxAmountLength}
	}

	account := Fields{
		{ID: IDAccountGUI, Value: PixGUI},
		{ID: IDAccountKey, Value: b.merchant.PixKey},
	}
	// Present-but-empty optional fields are rejected by some readers.
	if description != "" {
		account = append(account, Field{ID: IDAccountDescription, Value: description})
	}
	accountInfo := account.Encode()
	if len(accountInfo) > MaxFieldLength {
		return nil, &FieldError{ID: IDMerchantAccountInfo, Name: "merchant account information", Length: len(accountInfo), Max: MaxFieldLength}
	}

	payload := Fields{
		{ID: IDPayloadFormat, Value: PayloadFormat},
		{ID: IDMerchantAccountInfo, Value: accountInfo},
		{ID: IDMerchantCategory, Value: MerchantCategory},
		{ID: IDCurrency, Value: CurrencyBRL},
		{ID: IDAmount, Value: formatted},
		{ID: IDCountry, Value: CountryBR},
		{ID: IDMerchantName, Value: b.merchant.Name},
		{ID: IDMerchantCity, Value: b.merchant.City},
		{ID: IDAdditionalData, Value: Fields{{ID: IDReferenceLabel, Value: transactionID}}.Encode()},
	}.Encode() + crcTrailer

	return &Result{
		PixKey:        b.merchant.PixKey,
		PixCode:       payload + CRC16(payload),
		TransactionID: transactionID,
		Amount:        amount,
		Description:   description,
	}, nil
}
