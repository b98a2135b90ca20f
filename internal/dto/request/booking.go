package request

type CreateBookingRequest struct {
	SlotID string `json:"slotId" validate:"required,uuid4"`
}

// VerifyBookingRequest accepts either a scanned QR payload or a direct
// booking id (administrative override, skips the time window)
type VerifyBookingRequest struct {
	QRCodeData string `json:"qrCodeData" validate:"omitempty,min=1"`
	BookingID  string `json:"bookingId" validate:"omitempty,uuid4"`
}
