package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrUnknownField   ErrCode = "UNKNOWN_FIELD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Roster ────────────────────────────────────────────────────────
	ErrNothingToDelete   ErrCode = "ROSTER_EMPTY"
	ErrNothingToExport   ErrCode = "ROSTER_EMPTY_EXPORT"
	ErrUnsupportedFormat ErrCode = "UNSUPPORTED_FORMAT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."
	case ErrUnknownField:
		return "Kolom formulir tidak dikenal."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Data mahasiswa tidak ditemukan."
	case ErrConflict:
		return "NPM sudah terdaftar!"

	// ─── Roster ────────────────────────────────────────────────────────
	case ErrNothingToDelete:
		return "Tidak ada data untuk dihapus!"
	case ErrNothingToExport:
		return "Tidak ada data untuk diekspor!"
	case ErrUnsupportedFormat:
		return "Format ekspor tidak didukung."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
