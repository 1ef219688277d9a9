package service

import (
	"strings"
	"testing"
	"time"

	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/brcode"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMerchant = brcode.Merchant{
	PixKey: "pix@example.com",
	Name:   "ACME STORE",
	City:   "SAO PAULO",
}

func newTestPixService(t *testing.T) *pixService {
	t.Helper()
	clock := func() time.Time { return time.UnixMilli(1700001234567) }
	b, err := brcode.NewBuilder(testMerchant, brcode.WithClock(clock))
	require.NoError(t, err)
	return NewPixService(b, "", zerolog.Nop()).(*pixService)
}

func TestPixService_Generate(t *testing.T) {
	svc := newTestPixService(t)

	res, err := svc.Generate(2550, "")
	require.NoError(t, err)
	assert.Equal(t, "0001234567", res.TransactionID)
	assert.Contains(t, res.PixCode, "540525.50")
	assert.Equal(t, "pix@example.com", res.PixKey)
}

func TestPixService_Regenerate_MatchesKnownCode(t *testing.T) {
	svc := newTestPixService(t)

	res, err := svc.Regenerate(2550, "", "1234567890")
	require.NoError(t, err)
	assert.Equal(t,
		"00020126370014br.gov.bcb.pix0115pix@example.com520400005303986540525.505802BR5910ACME STORE6009SAO PAULO6214051012345678906304D5E5",
		res.PixCode)
}

func TestPixService_Generate_MapsErrors(t *testing.T) {
	svc := newTestPixService(t)

	_, err := svc.Generate(0, "")
	assertAppError(t, err, "PIX_001")

	_, err = svc.Generate(100, strings.Repeat("x", 26))
	assertAppError(t, err, "PIX_002")

	_, err = svc.Regenerate(100, "", "not valid")
	assertAppError(t, err, "PIX_002")

	_, err = svc.Regenerate(100, "", "12*4")
	assertAppError(t, err, "PIX_002")
}

func TestPixService_Generate_NonASCIIDescription(t *testing.T) {
	svc := newTestPixService(t)

	_, err := svc.Generate(100, "Pão de queijo")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PIX_002", appErr.Code)
	assert.Contains(t, appErr.Message, "ASCII")

	_, err = svc.Generate(100, strings.Repeat("x", 26))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "description must be at most 25 bytes", appErr.Message)
}

func TestPixService_ValidateKey(t *testing.T) {
	svc := newTestPixService(t)

	v := svc.ValidateKey("+5511987654321")
	assert.True(t, v.Valid)
	assert.Equal(t, brcode.KeyTypePhone, v.Type)
	assert.Equal(t, "+5511987654321", v.Key)

	v = svc.ValidateKey("not-a-key")
	assert.False(t, v.Valid)
	assert.Equal(t, brcode.KeyTypeInvalid, v.Type)
}

func TestPixService_Config(t *testing.T) {
	cfg := newTestPixService(t).Config()
	assert.Equal(t, "pix@example.com", cfg.PixKey)
	assert.Equal(t, brcode.KeyTypeEmail, cfg.KeyType)
	assert.Equal(t, "ACME STORE", cfg.MerchantName)
	assert.Equal(t, "SAO PAULO", cfg.MerchantCity)
	assert.True(t, cfg.IsConfigured)
}

func TestPixService_Decode(t *testing.T) {
	svc := newTestPixService(t)

	res, err := svc.Regenerate(1000, "Lunch", "***")
	require.NoError(t, err)

	p, err := svc.Decode(res.PixCode)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.Amount)
	assert.Equal(t, "Lunch", p.Description)

	_, err = svc.Decode(res.PixCode[:len(res.PixCode)-1] + "1")
	assertAppError(t, err, "PIX_003")
}

func TestPixService_QRCodeURL(t *testing.T) {
	svc := newTestPixService(t)
	assert.Contains(t, svc.QRCodeURL("000201"), "api.qrserver.com")
	assert.Contains(t, svc.QRCodeURL("000201"), "data=000201")
}
