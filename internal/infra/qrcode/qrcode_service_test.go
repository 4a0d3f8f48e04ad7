package qrcode

import (
	"encoding/json"
	"testing"

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
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateProductQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://market.example.edu")

	qrBytes, err := service.GenerateProductQR("prod-42")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateProductQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M", "")

			qrBytes, err := service.GenerateProductQR("prod-42")
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_ParseProductQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		ProductID: "prod-42",
		Type:      qrTypeProductShare,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseProductQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, "prod-42", parsedID)
}

func TestQRCodeService_ParseProductQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	_, err := service.ParseProductQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestQRCodeService_ParseProductQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		ProductID: "prod-42",
		Type:      "invalid_type",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseProductQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseProductQR_MissingProductID(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		Type: qrTypeProductShare,
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseProductQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing product id")
}
