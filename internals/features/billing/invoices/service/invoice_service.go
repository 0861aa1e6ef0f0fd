// file: internals/features/billing/invoices/service/invoice_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutorku_backend/internals/configs"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	paymentModel "tutorku_backend/internals/features/billing/payments/model"
	groupModel "tutorku_backend/internals/features/groups/model"
	groupService "tutorku_backend/internals/features/groups/service"
	notifModel "tutorku_backend/internals/features/notifications/model"
)

/* =========================================================
   Invoice Lifecycle Manager
   Satu-satunya penulis invoices + payments + invoice_transactions.
   Urutan setiap operasi: authz → cek precondition state → mutasi,
   semuanya dalam satu transaksi DB bersama entri ledger-nya.
========================================================= */

// Notifier: kontrak emitter notifikasi. Fire-and-forget —
// implementasinya tidak boleh bisa menggagalkan transaksi pemanggil.
type Notifier interface {
	Emit(eventType string, recipientIDs []uuid.UUID, title, description string, invoiceID *uuid.UUID)
}

type InvoiceService struct {
	DB       *gorm.DB
	Settings configs.BillingSettings
	Notifier Notifier
}

func NewInvoiceService(db *gorm.DB, settings configs.BillingSettings, notifier Notifier) *InvoiceService {
	return &InvoiceService{DB: db, Settings: settings, Notifier: notifier}
}

/* ======================
   Internal helpers
====================== */

// lockInvoice mengambil invoice dengan FOR UPDATE supaya pembayaran
// konkuren terhadap invoice yang sama terserialisasi.
func lockInvoice(tx *gorm.DB, invoiceID uuid.UUID) (*invoiceModel.Invoice, error) {
	var inv invoiceModel.Invoice
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "invoice tidak ditemukan")
		}
		return nil, err
	}
	return &inv, nil
}

func mustOwn(inv *invoiceModel.Invoice, teacherID uuid.UUID) error {
	if inv.InvoiceTeacherID != teacherID {
		return fiber.NewError(fiber.StatusForbidden, "bukan teacher pemilik invoice")
	}
	return nil
}

func appendMemo(inv *invoiceModel.Invoice, note string) {
	if inv.InvoiceMemo == nil || *inv.InvoiceMemo == "" {
		inv.InvoiceMemo = &note
		return
	}
	merged := *inv.InvoiceMemo + "\n" + note
	inv.InvoiceMemo = &merged
}

// retireReplacedInvoice membatalkan invoice aktif lama yang digantikan
// invoice baru untuk tuple (grup, siswa, periode) yang sama. Invoice
// yang sudah menerima pembayaran tidak boleh digantikan.
func retireReplacedInvoice(old *invoiceModel.Invoice) error {
	if old.InvoiceAmountPaidIDR > 0 {
		return fiber.NewError(fiber.StatusConflict,
			"invoice aktif untuk periode ini sudah menerima pembayaran")
	}
	old.InvoiceStatus = invoiceModel.InvoiceStatusCanceled
	appendMemo(old, "dibatalkan: digantikan invoice baru untuk periode yang sama")
	return nil
}

// ensureCancelable: batal hanya dari draft/sent dan selama belum ada
// pembayaran sama sekali.
func ensureCancelable(inv *invoiceModel.Invoice) error {
	if !inv.InvoiceStatus.CanCancel() {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("invoice berstatus %s tidak bisa dibatalkan", inv.InvoiceStatus))
	}
	if inv.InvoiceAmountPaidIDR > 0 {
		return fiber.NewError(fiber.StatusConflict, "pembayaran sudah ada, invoice tidak bisa dibatalkan")
	}
	return nil
}

/* ======================
   Preview
====================== */

// PreviewSettlement menjalankan Settlement Calculator tanpa menulis
// apa pun (preview live sebelum commit invoice).
func (s *InvoiceService) PreviewSettlement(
	ctx context.Context,
	teacherID, groupID, studentID uuid.UUID,
	periodStart, periodEnd time.Time,
) (PeriodSummary, error) {
	group, err := groupService.GetGroup(ctx, s.DB, s.Settings, groupID)
	if err != nil {
		return PeriodSummary{}, err
	}
	if group.OwnerTeacherID != teacherID {
		return PeriodSummary{}, fiber.NewError(fiber.StatusForbidden, "bukan pemilik grup")
	}
	return ComputePeriodSummary(ctx, s.DB, group, studentID, periodStart, periodEnd)
}

/* ======================
   CreateOrReplace
====================== */

type CreateInvoiceInput struct {
	GroupID     uuid.UUID
	StudentID   uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	BillingType invoiceModel.BillingType
	Memo        *string
}

// CreateOrReplace membuat invoice draft baru untuk (grup, siswa,
// periode). Invoice aktif lama untuk tuple yang sama dibatalkan dulu
// (jejak audit dipertahankan) — kecuali sudah ada pembayaran, yang
// membuat operasi ini Conflict.
func (s *InvoiceService) CreateOrReplace(ctx context.Context, teacherID uuid.UUID, in CreateInvoiceInput) (*invoiceModel.Invoice, error) {
	if !in.BillingType.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "billing_type tidak dikenal")
	}
	if !ValidMonthPeriod(in.PeriodStart, in.PeriodEnd) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "periode harus satu bulan kalender penuh")
	}

	group, err := groupService.GetGroup(ctx, s.DB, s.Settings, in.GroupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerTeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "bukan pemilik grup")
	}
	isStudent, err := groupService.IsMember(ctx, s.DB, in.GroupID, in.StudentID, groupModel.StudyGroupMemberRoleStudent)
	if err != nil {
		return nil, err
	}
	if !isStudent {
		return nil, fiber.NewError(fiber.StatusNotFound, "siswa bukan anggota grup")
	}

	summary, err := ComputePeriodSummary(ctx, s.DB, group, in.StudentID, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if err := ValidateMinimumAmount(s.Settings, summary.AmountDueIDR); err != nil {
		return nil, err
	}

	created, err := s.insertDraft(ctx, teacherID, in, summary)
	if isUniqueViolation(err) {
		// race nomor invoice: ulang SEKALI dengan sequence yang di-fetch ulang
		created, err = s.insertDraft(ctx, teacherID, in, summary)
	}
	return created, err
}

func (s *InvoiceService) insertDraft(
	ctx context.Context,
	teacherID uuid.UUID,
	in CreateInvoiceInput,
	summary PeriodSummary,
) (*invoiceModel.Invoice, error) {
	var created *invoiceModel.Invoice

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) batalkan invoice aktif lama untuk tuple yang sama (locked)
		var existing []invoiceModel.Invoice
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(`invoice_group_id = ? AND invoice_student_id = ?
			       AND invoice_period_start = ? AND invoice_period_end = ?
			       AND invoice_status <> ?`,
				in.GroupID, in.StudentID, in.PeriodStart, in.PeriodEnd,
				invoiceModel.InvoiceStatusCanceled).
			Find(&existing).Error; err != nil {
			return err
		}
		for i := range existing {
			old := &existing[i]
			if err := retireReplacedInvoice(old); err != nil {
				return err
			}
			if err := tx.Save(old).Error; err != nil {
				return err
			}
		}

		// 2) mint nomor & insert draft
		number, err := NextInvoiceNumber(ctx, tx, in.PeriodStart.Year())
		if err != nil {
			return err
		}
		inv := invoiceModel.Invoice{
			InvoiceNumber:            number,
			InvoiceTeacherID:         teacherID,
			InvoiceGroupID:           in.GroupID,
			InvoiceStudentID:         in.StudentID,
			InvoicePeriodStart:       in.PeriodStart,
			InvoicePeriodEnd:         in.PeriodEnd,
			InvoiceBillingType:       in.BillingType,
			InvoiceStatus:            invoiceModel.InvoiceStatusDraft,
			InvoiceLessonRateIDR:     summary.LessonRateIDR,
			InvoiceContractedLessons: summary.ContractedLessons,
			InvoiceAttendedLessons:   summary.Attended,
			InvoiceAbsentLessons:     summary.Absent,
			InvoiceAmountDueIDR:      summary.AmountDueIDR,
			InvoiceMemo:              in.Memo,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		// 3) entri ledger CHARGE awal senilai amount_due
		if err := appendTransaction(tx, inv.InvoiceID,
			invoiceModel.TransactionTypeCharge, summary.AmountDueIDR, "initial charge"); err != nil {
			return err
		}

		created = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

/* ======================
   Send
====================== */

// Send mengirim invoice draft ke siswa: status → sent, sent_at diisi,
// due date di-default, lalu notifikasi BILLING_ISSUED ke siswa + ortu
// terkait (best effort, tidak pernah membatalkan transisi).
func (s *InvoiceService) Send(ctx context.Context, teacherID, invoiceID uuid.UUID) (*invoiceModel.Invoice, error) {
	var sent *invoiceModel.Invoice

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		if err := mustOwn(inv, teacherID); err != nil {
			return err
		}
		if !inv.InvoiceStatus.CanSend() {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("invoice berstatus %s, hanya draft yang bisa dikirim", inv.InvoiceStatus))
		}

		now := time.Now()
		inv.InvoiceStatus = invoiceModel.InvoiceStatusSent
		inv.InvoiceSentAt = &now
		if inv.InvoiceDueDate == nil {
			due := now.AddDate(0, 0, s.Settings.DueInDays)
			inv.InvoiceDueDate = &due
		}
		if err := tx.Save(inv).Error; err != nil {
			return err
		}
		sent = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	// fan-out setelah commit — fire-and-forget
	s.notifyBillingIssued(ctx, sent)
	return sent, nil
}

func (s *InvoiceService) notifyBillingIssued(ctx context.Context, inv *invoiceModel.Invoice) {
	if s.Notifier == nil {
		return
	}
	recipients := []uuid.UUID{inv.InvoiceStudentID}
	parents, err := groupService.ListStudentParents(ctx, s.DB, inv.InvoiceGroupID, inv.InvoiceStudentID)
	if err == nil {
		recipients = append(recipients, parents...)
	}
	s.Notifier.Emit(
		notifModel.NotificationTypeBillingIssued,
		recipients,
		fmt.Sprintf("Tagihan %s diterbitkan", inv.InvoiceNumber),
		fmt.Sprintf("Nominal Rp%d, jatuh tempo %s", inv.InvoiceAmountDueIDR, dueDateLabel(inv)),
		&inv.InvoiceID,
	)
}

func dueDateLabel(inv *invoiceModel.Invoice) string {
	if inv.InvoiceDueDate == nil {
		return "-"
	}
	return inv.InvoiceDueDate.Format("2006-01-02")
}

/* ======================
   Cancel
====================== */

// Cancel membatalkan invoice draft/sent selama belum ada pembayaran.
func (s *InvoiceService) Cancel(ctx context.Context, teacherID, invoiceID uuid.UUID, reason string) (*invoiceModel.Invoice, error) {
	var canceled *invoiceModel.Invoice

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		if err := mustOwn(inv, teacherID); err != nil {
			return err
		}
		if err := ensureCancelable(inv); err != nil {
			return err
		}

		inv.InvoiceStatus = invoiceModel.InvoiceStatusCanceled
		appendMemo(inv, "dibatalkan: "+reason)
		if err := tx.Save(inv).Error; err != nil {
			return err
		}
		canceled = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}

/* ======================
   ApplyPayment (manual)
====================== */

type ApplyPaymentInput struct {
	Method    paymentModel.PaymentMethod
	AmountIDR int
	Note      *string
}

// ApplyPayment mencatat konfirmasi pembayaran manual oleh teacher:
// Payment(success) + entri CHARGE + update amount_paid + recompute
// status, semuanya dalam satu transaksi.
func (s *InvoiceService) ApplyPayment(ctx context.Context, teacherID, invoiceID uuid.UUID, in ApplyPaymentInput) (*invoiceModel.Invoice, *paymentModel.Payment, error) {
	if !in.Method.Valid() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "metode pembayaran tidak dikenal")
	}
	if in.AmountIDR <= 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "nominal pembayaran harus > 0")
	}

	var (
		updated *invoiceModel.Invoice
		payment *paymentModel.Payment
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		if err := mustOwn(inv, teacherID); err != nil {
			return err
		}

		now := time.Now()
		p := paymentModel.Payment{
			PaymentInvoiceID:  inv.InvoiceID,
			PaymentMethod:     in.Method,
			PaymentStatus:     paymentModel.PaymentStatusSuccess,
			PaymentAmountIDR:  in.AmountIDR,
			PaymentApprovedAt: &now,
		}
		if err := s.settlePaymentTx(tx, inv, &p, noteOrDefault(in.Note, "manual confirm")); err != nil {
			return err
		}

		updated, payment = inv, &p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifyPaymentConfirmed(updated, payment)
	return updated, payment, nil
}

// applySuccessfulPayment menerapkan satu pembayaran sukses ke invoice
// secara in-memory: semua guard-nya di sini supaya invariant
// amount_paid ≤ amount_due tidak bisa dilewati jalur manapun.
// Persist ke DB dilakukan pemanggil.
func applySuccessfulPayment(inv *invoiceModel.Invoice, amountIDR int, now time.Time) error {
	if !inv.InvoiceStatus.AcceptsPayment() {
		return fiber.NewError(fiber.StatusConflict, "invoice sudah dibatalkan")
	}
	if inv.InvoiceStatus == invoiceModel.InvoiceStatusPaid {
		return fiber.NewError(fiber.StatusConflict, "invoice sudah lunas")
	}
	if amountIDR <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nominal pembayaran harus > 0")
	}
	if inv.InvoiceAmountPaidIDR+amountIDR > inv.InvoiceAmountDueIDR {
		return fiber.NewError(fiber.StatusConflict, "nominal melebihi sisa tagihan")
	}

	inv.InvoiceAmountPaidIDR += amountIDR
	inv.InvoiceStatus = invoiceModel.NextStatusAfterPayment(
		inv.InvoiceStatus, inv.InvoiceAmountPaidIDR, inv.InvoiceAmountDueIDR)
	if inv.InvoiceStatus == invoiceModel.InvoiceStatusPaid && inv.InvoicePaidAt == nil {
		inv.InvoicePaidAt = &now
	}
	return nil
}

// settlePaymentTx adalah jalur tunggal penerapan pembayaran sukses:
// dipakai konfirmasi manual dan callback gateway. Invoice harus sudah
// di-lock FOR UPDATE oleh pemanggil.
func (s *InvoiceService) settlePaymentTx(tx *gorm.DB, inv *invoiceModel.Invoice, p *paymentModel.Payment, note string) error {
	if err := applySuccessfulPayment(inv, p.PaymentAmountIDR, time.Now()); err != nil {
		return err
	}

	if p.PaymentID == uuid.Nil {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
	} else if err := tx.Save(p).Error; err != nil {
		return err
	}

	if err := appendTransaction(tx, inv.InvoiceID,
		invoiceModel.TransactionTypeCharge, p.PaymentAmountIDR, note); err != nil {
		return err
	}
	return tx.Save(inv).Error
}

func (s *InvoiceService) notifyPaymentConfirmed(inv *invoiceModel.Invoice, p *paymentModel.Payment) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Emit(
		notifModel.NotificationTypePaymentConfirmed,
		[]uuid.UUID{inv.InvoiceTeacherID},
		fmt.Sprintf("Pembayaran %s dikonfirmasi", inv.InvoiceNumber),
		fmt.Sprintf("Masuk Rp%d (%s), total terbayar Rp%d dari Rp%d",
			p.PaymentAmountIDR, p.PaymentMethod, inv.InvoiceAmountPaidIDR, inv.InvoiceAmountDueIDR),
		&inv.InvoiceID,
	)
}

func noteOrDefault(note *string, def string) string {
	if note != nil && *note != "" {
		return *note
	}
	return def
}

/* ======================
   Gateway path
====================== */

// OpenGatewayPayment membuat Payment pending untuk checkout via
// gateway, dengan order id unik per attempt (nomor invoice + suffix
// acak) supaya retry checkout tidak bentrok di sisi gateway. Belum
// menyentuh amount_paid — itu baru terjadi saat callback sukses.
func (s *InvoiceService) OpenGatewayPayment(ctx context.Context, invoiceID uuid.UUID, provider string) (*invoiceModel.Invoice, *paymentModel.Payment, error) {
	var (
		inv *invoiceModel.Invoice
		p   *paymentModel.Payment
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		if !locked.InvoiceStatus.AcceptsPayment() {
			return fiber.NewError(fiber.StatusConflict, "invoice sudah dibatalkan")
		}
		if locked.InvoiceStatus == invoiceModel.InvoiceStatusDraft {
			return fiber.NewError(fiber.StatusConflict, "invoice belum dikirim")
		}

		remaining := locked.InvoiceAmountDueIDR - locked.InvoiceAmountPaidIDR
		if remaining <= 0 {
			return fiber.NewError(fiber.StatusConflict, "invoice sudah lunas")
		}

		orderID := fmt.Sprintf("%s-%s", locked.InvoiceNumber, uuid.NewString()[:8])
		pending := paymentModel.Payment{
			PaymentInvoiceID:       locked.InvoiceID,
			PaymentMethod:          paymentModel.PaymentMethodEasyPay,
			PaymentStatus:          paymentModel.PaymentStatusPending,
			PaymentAmountIDR:       remaining,
			PaymentProvider:        &provider,
			PaymentProviderOrderID: &orderID,
		}
		if err := tx.Create(&pending).Error; err != nil {
			return err
		}
		inv, p = locked, &pending
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, p, nil
}

// ConfirmGatewayPayment diterapkan dari webhook saat gateway melapor
// sukses. Idempotent: payment yang sudah success tidak diproses ulang.
func (s *InvoiceService) ConfirmGatewayPayment(ctx context.Context, providerOrderID string, txnID, maskedCard *string, payload datatypes.JSON) (*invoiceModel.Invoice, error) {
	var updated *invoiceModel.Invoice
	var confirmed *paymentModel.Payment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel.Payment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "payment_provider_order_id = ?", providerOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "payment tidak ditemukan untuk order tsb")
			}
			return err
		}
		if p.PaymentStatus == paymentModel.PaymentStatusSuccess {
			return nil // callback dobel — sudah diproses
		}
		if p.PaymentStatus != paymentModel.PaymentStatusPending {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("payment berstatus %s, tidak bisa dikonfirmasi", p.PaymentStatus))
		}

		inv, err := lockInvoice(tx, p.PaymentInvoiceID)
		if err != nil {
			return err
		}

		now := time.Now()
		p.PaymentStatus = paymentModel.PaymentStatusSuccess
		p.PaymentApprovedAt = &now
		p.PaymentProviderTxnID = txnID
		p.PaymentMaskedCard = maskedCard
		p.PaymentPayload = payload

		if err := s.settlePaymentTx(tx, inv, &p, "gateway settlement"); err != nil {
			return err
		}
		updated, confirmed = inv, &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated != nil && confirmed != nil {
		s.notifyPaymentConfirmed(updated, confirmed)
	}
	return updated, nil
}

// FailGatewayPayment menandai payment pending gagal/batal dari laporan
// gateway. Tidak menyentuh invoice: belum ada uang yang berpindah.
func (s *InvoiceService) FailGatewayPayment(ctx context.Context, providerOrderID string, status paymentModel.PaymentStatus, reason string, payload datatypes.JSON) error {
	if status != paymentModel.PaymentStatusFailed && status != paymentModel.PaymentStatusCanceled {
		return fiber.NewError(fiber.StatusBadRequest, "status gagal tidak dikenal")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p paymentModel.Payment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "payment_provider_order_id = ?", providerOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "payment tidak ditemukan untuk order tsb")
			}
			return err
		}
		if p.PaymentStatus != paymentModel.PaymentStatusPending {
			return nil // sudah final — abaikan laporan susulan
		}

		now := time.Now()
		p.PaymentStatus = status
		p.PaymentFailureReason = &reason
		p.PaymentPayload = payload
		if status == paymentModel.PaymentStatusCanceled {
			p.PaymentCanceledAt = &now
		}
		return tx.Save(&p).Error
	})
}

/* ======================
   Overdue sweep
====================== */

// MarkOverdue menandai invoice sent yang melewati jatuh tempo.
// Dipicu lewat endpoint admin, bukan scheduler internal.
func (s *InvoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(`
		UPDATE invoices
		   SET invoice_status = 'overdue',
		       invoice_updated_at = NOW()
		 WHERE invoice_status = 'sent'
		   AND invoice_due_date IS NOT NULL
		   AND invoice_due_date < CURRENT_DATE
		   AND invoice_deleted_at IS NULL
	`)
	return res.RowsAffected, res.Error
}
