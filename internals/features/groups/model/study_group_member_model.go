// file: internals/features/groups/model/study_group_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — role keanggotaan grup
// =========================================================

type StudyGroupMemberRole string

const (
	StudyGroupMemberRoleStudent StudyGroupMemberRole = "student"
	StudyGroupMemberRoleParent  StudyGroupMemberRole = "parent"
)

func (r StudyGroupMemberRole) Valid() bool {
	switch r {
	case StudyGroupMemberRoleStudent, StudyGroupMemberRoleParent:
		return true
	}
	return false
}

// =========================================================
// MODEL
// =========================================================

type StudyGroupMember struct {
	// PK
	StudyGroupMemberID uuid.UUID `gorm:"column:study_group_member_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"study_group_member_id"`

	// FK → study_groups(study_group_id)
	StudyGroupMemberGroupID uuid.UUID `gorm:"column:study_group_member_group_id;type:uuid;not null;index;uniqueIndex:uniq_group_member,priority:1" json:"study_group_member_group_id"`

	// FK → users(id)
	StudyGroupMemberUserID uuid.UUID `gorm:"column:study_group_member_user_id;type:uuid;not null;index;uniqueIndex:uniq_group_member,priority:2" json:"study_group_member_user_id"`

	StudyGroupMemberRole StudyGroupMemberRole `gorm:"column:study_group_member_role;type:varchar(10);not null" json:"study_group_member_role"`

	// Untuk role parent: siswa yang diikuti di grup ini
	StudyGroupMemberStudentID *uuid.UUID `gorm:"column:study_group_member_student_id;type:uuid;index" json:"study_group_member_student_id,omitempty"`

	StudyGroupMemberJoinedAt  time.Time      `gorm:"column:study_group_member_joined_at;not null;default:now()" json:"study_group_member_joined_at"`
	StudyGroupMemberDeletedAt gorm.DeletedAt `gorm:"column:study_group_member_deleted_at;index" json:"-"`
}

func (StudyGroupMember) TableName() string {
	return "study_group_members"
}

func (m *StudyGroupMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudyGroupMemberJoinedAt.IsZero() {
		m.StudyGroupMemberJoinedAt = time.Now()
	}
	return nil
}
