// file: internals/features/groups/model/study_group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — grup belajar (satu teacher, banyak siswa/ortu)
// =========================================================

type StudyGroup struct {
	// PK
	StudyGroupID uuid.UUID `gorm:"column:study_group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"study_group_id"`

	// FK → users(id), teacher pemilik grup
	StudyGroupOwnerTeacherID uuid.UUID `gorm:"column:study_group_owner_teacher_id;type:uuid;not null;index:ix_study_group_owner" json:"study_group_owner_teacher_id"`

	StudyGroupName    string  `gorm:"column:study_group_name;type:varchar(120);not null" json:"study_group_name"`
	StudyGroupSubject *string `gorm:"column:study_group_subject;type:varchar(80)" json:"study_group_subject,omitempty"`

	// Konfigurasi tarif per grup. NULL = pakai default dari settings.
	StudyGroupLessonRateIDR     *int `gorm:"column:study_group_lesson_rate_idr;check:study_group_lesson_rate_idr>=0" json:"study_group_lesson_rate_idr,omitempty"`
	StudyGroupContractedLessons *int `gorm:"column:study_group_contracted_lessons;check:study_group_contracted_lessons>=0" json:"study_group_contracted_lessons,omitempty"`

	// Kode undangan untuk join grup
	StudyGroupInviteCode string `gorm:"column:study_group_invite_code;type:varchar(12);uniqueIndex" json:"study_group_invite_code"`

	// Timestamps (eksplisit)
	StudyGroupCreatedAt time.Time      `gorm:"column:study_group_created_at;not null;default:now()" json:"study_group_created_at"`
	StudyGroupUpdatedAt time.Time      `gorm:"column:study_group_updated_at;not null;default:now()" json:"study_group_updated_at"`
	StudyGroupDeletedAt gorm.DeletedAt `gorm:"column:study_group_deleted_at;index" json:"-"`
}

func (StudyGroup) TableName() string {
	return "study_groups"
}

func (m *StudyGroup) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.StudyGroupCreatedAt.IsZero() {
		m.StudyGroupCreatedAt = now
	}
	m.StudyGroupUpdatedAt = now
	return nil
}

func (m *StudyGroup) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudyGroupUpdatedAt = time.Now()
	return nil
}
