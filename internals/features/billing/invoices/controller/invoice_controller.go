// file: internals/features/billing/invoices/controller/invoice_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	"tutorku_backend/internals/features/billing/invoices/dto"
	"tutorku_backend/internals/features/billing/invoices/model"
	"tutorku_backend/internals/features/billing/invoices/service"
	paymentModel "tutorku_backend/internals/features/billing/payments/model"
	notifService "tutorku_backend/internals/features/notifications/service"
	helper "tutorku_backend/internals/helpers"
)

var validate = validator.New()

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *service.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, settings configs.BillingSettings) *InvoiceHandler {
	return &InvoiceHandler{
		DB:  db,
		Svc: service.NewInvoiceService(db, settings, notifService.NewEmitter(db)),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// -----------------------------------------
// PreviewSettlement (GET /settlements/preview)
// Hitung live, tidak menulis apa pun.
// -----------------------------------------
func (h *InvoiceHandler) PreviewSettlement(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var q dto.SettlementPreviewQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	start, end := service.MonthPeriod(q.Year, time.Month(q.Month))
	summary, err := h.Svc.PreviewSettlement(c.Context(), teacherID, q.GroupID, q.StudentID, start, end)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToSettlementPreviewResponse(q, start, end, summary))
}

// -----------------------------------------
// List (GET /invoices) — invoice milik teacher login
// -----------------------------------------
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Invoice{}).
		Where("invoice_teacher_id = ?", teacherID)

	if s := c.Query("status"); s != "" {
		if !model.InvoiceStatus(s).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
		}
		q = q.Where("invoice_status = ?", s)
	}
	if g := c.Query("group_id"); g != "" {
		gid, err := uuid.Parse(g)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "group_id tidak valid")
		}
		q = q.Where("invoice_group_id = ?", gid)
	}
	if st := c.Query("student_id"); st != "" {
		sid, err := uuid.Parse(st)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("invoice_student_id = ?", sid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Invoice
	if err := q.
		Order("invoice_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToInvoiceResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /invoices) — settlement + draft dalam satu langkah
// -----------------------------------------
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var in dto.InvoiceCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	inv, err := h.Svc.CreateOrReplace(c.Context(), teacherID, in.ToInput())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "invoice dibuat", dto.ToInvoiceResponse(*inv))
}

// -----------------------------------------
// GetByID (GET /invoices/:id)
// -----------------------------------------
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var inv model.Invoice
	if err := h.DB.First(&inv, "invoice_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "invoice tidak ditemukan")
	}
	if inv.InvoiceTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan teacher pemilik invoice")
	}
	return helper.JsonOK(c, "ok", dto.ToInvoiceResponse(inv))
}

// -----------------------------------------
// Send (POST /invoices/:id/send)
// -----------------------------------------
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	inv, err := h.Svc.Send(c.Context(), teacherID, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "invoice dikirim", dto.ToInvoiceResponse(*inv))
}

// -----------------------------------------
// Cancel (POST /invoices/:id/cancel)
// -----------------------------------------
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var in dto.InvoiceCancelRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	inv, err := h.Svc.Cancel(c.Context(), teacherID, id, in.Reason)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "invoice dibatalkan", dto.ToInvoiceResponse(*inv))
}

// -----------------------------------------
// ApplyPayment (POST /invoices/:id/payments) — konfirmasi manual
// -----------------------------------------
func (h *InvoiceHandler) ApplyPayment(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var in dto.ManualPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	inv, _, err := h.Svc.ApplyPayment(c.Context(), teacherID, id, service.ApplyPaymentInput{
		Method:    paymentModel.PaymentMethod(in.Method),
		AmountIDR: in.AmountIDR,
		Note:      in.Note,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "pembayaran dicatat", dto.ToInvoiceResponse(*inv))
}

// -----------------------------------------
// ListTransactions (GET /invoices/:id/transactions) — riwayat ledger
// -----------------------------------------
func (h *InvoiceHandler) ListTransactions(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var inv model.Invoice
	if err := h.DB.First(&inv, "invoice_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "invoice tidak ditemukan")
	}
	if inv.InvoiceTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan teacher pemilik invoice")
	}

	trx, err := service.ListTransactions(c.Context(), h.DB, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToTransactionResponses(trx))
}

// -----------------------------------------
// MarkOverdue (POST /invoices/overdue/sweep) — admin only
// -----------------------------------------
func (h *InvoiceHandler) MarkOverdue(c *fiber.Ctx) error {
	n, err := h.Svc.MarkOverdue(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "sweep selesai", fiber.Map{"marked_overdue": n})
}
