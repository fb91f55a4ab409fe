package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateVoucherQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	purchaseID := uuid.New()

	qrBytes, err := service.GenerateVoucherQR(purchaseID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParseVoucherQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	purchaseID := uuid.New()

	payload, err := json.Marshal(QRCodeData{
		PurchaseID: purchaseID.String(),
		Type:       "voucher",
	})
	require.NoError(t, err)

	parsed, err := service.ParseVoucherQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, purchaseID, parsed)
}

func TestQRCodeService_ParseVoucherQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M")

	payload, err := json.Marshal(QRCodeData{
		PurchaseID: uuid.New().String(),
		Type:       "subscription",
	})
	require.NoError(t, err)

	_, err = service.ParseVoucherQR(string(payload))
	assert.Error(t, err)
}

func TestQRCodeService_ParseVoucherQR_BadPayload(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.ParseVoucherQR("{not json")
	assert.Error(t, err)

	_, err = service.ParseVoucherQR(`{"purchase_id":"not-a-uuid","type":"voucher"}`)
	assert.Error(t, err)
}
