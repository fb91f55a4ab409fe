package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateVoucherQR generates a QR code image for a shop purchase voucher
	GenerateVoucherQR(purchaseID uuid.UUID) ([]byte, error)

	// ParseVoucherQR parses scanned QR data and returns the purchase ID
	ParseVoucherQR(qrData string) (uuid.UUID, error)
}
