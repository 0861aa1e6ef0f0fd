// file: internals/features/groups/service/directory.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	"tutorku_backend/internals/features/groups/model"
)

/* =========================================================
   Directory — kontrak sempit yang dikonsumsi settlement:
   GetGroup / IsMember / ListStudentParents
========================================================= */

// GroupInfo adalah ringkasan grup untuk kebutuhan billing.
// Rate & contracted sudah di-resolve dengan default settings.
type GroupInfo struct {
	GroupID           uuid.UUID
	OwnerTeacherID    uuid.UUID
	LessonRateIDR     int
	ContractedLessons int
}

// GetGroup mengambil grup (non-deleted) + resolve tarif efektifnya.
func GetGroup(ctx context.Context, db *gorm.DB, settings configs.BillingSettings, groupID uuid.UUID) (GroupInfo, error) {
	var g model.StudyGroup
	if err := db.WithContext(ctx).
		First(&g, "study_group_id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupInfo{}, fiber.NewError(fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return GroupInfo{}, err
	}

	rate := settings.DefaultLessonRateIDR
	if g.StudyGroupLessonRateIDR != nil && *g.StudyGroupLessonRateIDR > 0 {
		rate = *g.StudyGroupLessonRateIDR
	}
	contracted := settings.DefaultContractedLessons
	if g.StudyGroupContractedLessons != nil && *g.StudyGroupContractedLessons > 0 {
		contracted = *g.StudyGroupContractedLessons
	}

	return GroupInfo{
		GroupID:           g.StudyGroupID,
		OwnerTeacherID:    g.StudyGroupOwnerTeacherID,
		LessonRateIDR:     rate,
		ContractedLessons: contracted,
	}, nil
}

// IsMember mengecek keanggotaan user di grup dengan role tertentu.
func IsMember(ctx context.Context, db *gorm.DB, groupID, userID uuid.UUID, role model.StudyGroupMemberRole) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).
		Model(&model.StudyGroupMember{}).
		Where("study_group_member_group_id = ? AND study_group_member_user_id = ? AND study_group_member_role = ?",
			groupID, userID, role).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListStudentParents mengembalikan user id para orang tua yang
// terhubung ke siswa tersebut di grup ini (untuk fan-out notifikasi).
func ListStudentParents(ctx context.Context, db *gorm.DB, groupID, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := db.WithContext(ctx).
		Model(&model.StudyGroupMember{}).
		Where("study_group_member_group_id = ? AND study_group_member_role = ? AND study_group_member_student_id = ?",
			groupID, model.StudyGroupMemberRoleParent, studentID).
		Pluck("study_group_member_user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

/* =========================================================
   Invite code
========================================================= */

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // tanpa karakter ambigu

// GenerateInviteCode membuat kode undangan 8 karakter.
func GenerateInviteCode() (string, error) {
	b := make([]byte, 8)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
