package brcode

import "net/url"

// DefaultQRCodeBaseURL renders a 300x300 PNG for whatever is passed as data.
const DefaultQRCodeBaseURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300"

// QRCodeURL returns an image URL for code on a URL-based QR renderer. base
// may already carry query parameters.
func QRCodeURL(base, code string) string {
	if base == "" {
		base = DefaultQRCodeBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("data", code)
	u.RawQuery = q.Encode()
	return u.String()
}
