// file: internals/features/billing/invoices/service/settlement.go
package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	attendanceModel "tutorku_backend/internals/features/attendance/model"
	attendanceService "tutorku_backend/internals/features/attendance/service"
	groupService "tutorku_backend/internals/features/groups/service"
)

/* =========================================================
   Settlement Calculator
   Murni read-only & idempotent: dipakai untuk preview live
   sebelum invoice dibuat, dan dipanggil lagi saat commit.
========================================================= */

// PeriodSummary adalah hasil settlement satu (grup, siswa, periode).
type PeriodSummary struct {
	Attended          int `json:"attended"`
	Absent            int `json:"absent"`
	LessonRateIDR     int `json:"lesson_rate_idr"`
	ContractedLessons int `json:"contracted_lessons"`
	AmountDueIDR      int `json:"amount_due_idr"`
}

// CountAttendance menghitung sesi billable dari baris absensi:
//   - tidak ada record → tidak dihitung sama sekali (belum diabsen)
//   - absent           → absent++
//   - present/late/early_leave → attended++ (kehadiran apapun ditagih)
func CountAttendance(rows []attendanceService.LessonAttendanceRow) (attended, absent int) {
	for _, r := range rows {
		if r.Status == nil {
			continue
		}
		if *r.Status == attendanceModel.AttendanceStatusAbsent {
			absent++
		} else if r.Status.Countable() {
			attended++
		}
	}
	return attended, absent
}

// ComputePeriodSummary menjalankan settlement untuk satu periode.
func ComputePeriodSummary(
	ctx context.Context,
	db *gorm.DB,
	group groupService.GroupInfo,
	studentID uuid.UUID,
	periodStart, periodEnd time.Time,
) (PeriodSummary, error) {
	rows, err := attendanceService.ListCompletedLessonAttendance(ctx, db, group.GroupID, studentID, periodStart, periodEnd)
	if err != nil {
		return PeriodSummary{}, err
	}

	attended, absent := CountAttendance(rows)
	return PeriodSummary{
		Attended:          attended,
		Absent:            absent,
		LessonRateIDR:     group.LessonRateIDR,
		ContractedLessons: group.ContractedLessons,
		AmountDueIDR:      attended * group.LessonRateIDR,
	}, nil
}

// ValidateMinimumAmount menolak nominal di bawah threshold.
// Kebijakannya eksplisit: TIDAK ada auto-merge periode — sisa
// dibawa manual ke periode berikutnya oleh teacher.
func ValidateMinimumAmount(settings configs.BillingSettings, amountDueIDR int) error {
	if amountDueIDR < settings.MinInvoiceAmountIDR {
		return fiber.NewError(fiber.StatusBadRequest,
			"nominal tagihan di bawah minimum; bawa ke periode berikutnya (carry over)")
	}
	return nil
}

/* =========================================================
   Period helpers — periode invoice selalu satu bulan kalender
========================================================= */

// MonthPeriod mengembalikan [tanggal 1, tanggal terakhir] bulan tsb (UTC).
func MonthPeriod(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// ValidMonthPeriod memastikan [start, end] tepat satu bulan kalender.
func ValidMonthPeriod(start, end time.Time) bool {
	if start.Day() != 1 {
		return false
	}
	_, wantEnd := MonthPeriod(start.Year(), start.Month())
	return end.Year() == wantEnd.Year() &&
		end.Month() == wantEnd.Month() &&
		end.Day() == wantEnd.Day()
}
