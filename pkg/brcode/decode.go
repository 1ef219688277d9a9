package brcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Payload is the parsed content of a static BR Code.
type Payload struct {
	PixKey        string
	Description   string
	Amount        int64 // centavos; 0 when the code carries no amount
	Currency      string
	Country       string
	MerchantName  string
	MerchantCity  string
	TransactionID string
	Checksum      string
	Fields        Fields
}

// Decode parses code, verifying every length prefix and the trailing CRC.
func Decode(code string) (*Payload, error) {
	if len(code) < len(crcTrailer)+4 {
		return nil, fmt.Errorf("%w: code too short", ErrMalformed)
	}
	fields, err := ParseFields(code)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 || fields[0].ID != IDPayloadFormat || fields[0].Value != PayloadFormat {
		return nil, fmt.Errorf("%w: missing payload format indicator", ErrMalformed)
	}
	last := fields[len(fields)-1]
	if last.ID != IDCRC || len(last.Value) != 4 {
		return nil, fmt.Errorf("%w: missing checksum field", ErrMalformed)
	}
	body := code[:len(code)-4]
	if want := CRC16(body); !strings.EqualFold(want, last.Value) {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, last.Value, want)
	}

	p := &Payload{Checksum: last.Value, Fields: fields}
	for _, f := range fields {
		switch f.ID {
		case IDMerchantAccountInfo:
			sub, err := ParseFields(f.Value)
			if err != nil {
				return nil, fmt.Errorf("merchant account information: %w", err)
			}
			if gui, _ := sub.Get(IDAccountGUI); !strings.EqualFold(gui, PixGUI) {
				return nil, fmt.Errorf("%w: unexpected GUI %q", ErrMalformed, gui)
			}
			p.PixKey, _ = sub.Get(IDAccountKey)
			p.Description, _ = sub.Get(IDAccountDescription)
		case IDAmount:
			cents, err := parseAmount(f.Value)
			if err != nil {
				return nil, err
			}
			p.Amount = cents
		case IDCurrency:
			p.Currency = f.Value
		case IDCountry:
			p.Country = f.Value
		case IDMerchantName:
			p.MerchantName = f.Value
		case IDMerchantCity:
			p.MerchantCity = f.Value
		case IDAdditionalData:
			sub, err := ParseFields(f.Value)
			if err != nil {
				return nil, fmt.Errorf("additional data: %w", err)
			}
			p.TransactionID, _ = sub.Get(IDReferenceLabel)
		}
	}
	if p.PixKey == "" {
		return nil, fmt.Errorf("%w: missing pix key", ErrMalformed)
	}
	return p, nil
}

func parseAmount(s string) (int64, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if !isDigits(whole) || len(frac) > 2 || (frac != "" && !isDigits(frac)) {
		return 0, fmt.Errorf("%w: bad amount %q", ErrMalformed, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad amount %q", ErrMalformed, s)
	}
	return cents, nil
}
