package qrcode

import (
	"encoding/json"
	"fmt"

	"unimarket/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
}

const qrTypeProductShare = "product-share"

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// GenerateProductQR generates a QR code for sharing a product listing
func (s *qrcodeService) GenerateProductQR(productID string) ([]byte, error) {
	data := QRCodeData{
		ProductID: productID,
		Type:      qrTypeProductShare,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/products/" + productID
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseProductQR parses QR code data and returns the product id
func (s *qrcodeService) ParseProductQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != qrTypeProductShare {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.ProductID == "" {
		return "", fmt.Errorf("missing product id in QR code data")
	}

	return data.ProductID, nil
}
