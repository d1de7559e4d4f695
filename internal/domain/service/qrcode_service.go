package service

// QRCodeService renders a provenance payload as a scannable QR image. The
// payload is the record's canonical text itself: whoever scans the code
// holds exactly the bytes the commitment was computed from.
type QRCodeService interface {
	// GeneratePayloadQR encodes the canonical payload text as a PNG image.
	GeneratePayloadQR(payloadText string) ([]byte, error)
}
