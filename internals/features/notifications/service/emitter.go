// file: internals/features/notifications/service/emitter.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/notifications/model"
)

/* =========================================================
   Emitter — fire-and-forget.
   Insert notifikasi berjalan di goroutine terpisah dengan
   context sendiri: gagal kirim hanya dicatat di log, tidak
   pernah membatalkan transaksi finansial pemanggilnya.
========================================================= */

type Emitter struct {
	DB *gorm.DB
}

func NewEmitter(db *gorm.DB) *Emitter {
	return &Emitter{DB: db}
}

// Emit mengantrikan satu notifikasi in-app untuk recipientIDs.
// Tidak mengembalikan error: pemanggil tidak boleh bergantung
// pada hasil pengiriman.
func (e *Emitter) Emit(eventType string, recipientIDs []uuid.UUID, title, description string, invoiceID *uuid.UUID) {
	if e == nil || e.DB == nil || len(recipientIDs) == 0 {
		return
	}

	recipients := make(pq.StringArray, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		recipients = append(recipients, id.String())
	}

	n := model.Notification{
		NotificationType:        eventType,
		NotificationTitle:       title,
		NotificationDescription: description,
		NotificationRecipients:  recipients,
		NotificationInvoiceID:   invoiceID,
		NotificationTags:        pq.StringArray{"billing"},
	}

	go func() {
		// context sendiri, bukan context request (request bisa sudah selesai)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.DB.WithContext(ctx).Create(&n).Error; err != nil {
			log.Printf("[WARN] gagal kirim notifikasi %s: %v", eventType, err)
		}
	}()
}
