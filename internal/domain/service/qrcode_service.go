package service

// QRCodeService defines the interface for QR code generation services.
type QRCodeService interface {
	// GenerateProductQR generates a PNG QR code encoding a share payload
	// for the given listing.
	GenerateProductQR(productID string) ([]byte, error)

	// ParseProductQR parses QR code data and returns the product id.
	ParseProductQR(qrData string) (string, error)
}
