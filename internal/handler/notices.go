package handler

import (
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
)

// Notice codes travel in the redirect URL after a form action (?notice=...).
const (
	NoticeAdded        = "added"
	NoticeDeleted      = "deleted"
	NoticeMissing      = "missing"
	NoticeCleared      = "cleared"
	NoticeClearEmpty   = "clear_empty"
	NoticeExportEmpty  = "export_empty"
	NoticeExportFormat = "export_format"
)

type noticeText struct {
	kind    model.NotificationKind
	message string
}

var notices = map[string]noticeText{
	NoticeAdded:        {model.NotificationSuccess, "Data mahasiswa berhasil ditambahkan!"},
	NoticeDeleted:      {model.NotificationSuccess, "Data mahasiswa berhasil dihapus!"},
	NoticeMissing:      {model.NotificationError, "Data mahasiswa tidak ditemukan."},
	NoticeCleared:      {model.NotificationSuccess, "Semua data mahasiswa berhasil dihapus!"},
	NoticeClearEmpty:   {model.NotificationError, "Tidak ada data untuk dihapus!"},
	NoticeExportEmpty:  {model.NotificationError, "Tidak ada data untuk diekspor!"},
	NoticeExportFormat: {model.NotificationError, "Format ekspor tidak didukung."},
}

// Notifier turns notice codes into notifications with the configured display time.
type Notifier struct {
	duration time.Duration
}

// NewNotifier creates a Notifier whose notifications last d.
func NewNotifier(d time.Duration) *Notifier {
	return &Notifier{duration: d}
}

// For returns the notification for code, or nil for an unknown code.
func (n *Notifier) For(code string) *model.Notification {
	text, ok := notices[code]
	if !ok {
		return nil
	}
	return model.NewNotification(text.kind, text.message, n.duration)
}
