// file: internals/features/groups/dto/study_group_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tutorku_backend/internals/features/groups/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type StudyGroupCreateDTO struct {
	Name              string  `json:"name" validate:"required,min=2,max=120"`
	Subject           *string `json:"subject" validate:"omitempty,max=80"`
	LessonRateIDR     *int    `json:"lesson_rate_idr" validate:"omitempty,gte=0"`
	ContractedLessons *int    `json:"contracted_lessons" validate:"omitempty,gte=0"`
}

type StudyGroupUpdateDTO struct {
	Name              *string `json:"name" validate:"omitempty,min=2,max=120"`
	Subject           *string `json:"subject" validate:"omitempty,max=80"`
	LessonRateIDR     *int    `json:"lesson_rate_idr" validate:"omitempty,gte=0"`
	ContractedLessons *int    `json:"contracted_lessons" validate:"omitempty,gte=0"`
}

type StudyGroupMemberAddDTO struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	Role      string     `json:"role" validate:"required,oneof=student parent"`
	StudentID *uuid.UUID `json:"student_id" validate:"omitempty"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type StudyGroupResponse struct {
	StudyGroupID      uuid.UUID `json:"study_group_id"`
	OwnerTeacherID    uuid.UUID `json:"owner_teacher_id"`
	Name              string    `json:"name"`
	Subject           *string   `json:"subject,omitempty"`
	LessonRateIDR     *int      `json:"lesson_rate_idr,omitempty"`
	ContractedLessons *int      `json:"contracted_lessons,omitempty"`
	InviteCode        string    `json:"invite_code"`
	CreatedAt         time.Time `json:"created_at"`
}

type StudyGroupMemberResponse struct {
	StudyGroupMemberID uuid.UUID  `json:"study_group_member_id"`
	GroupID            uuid.UUID  `json:"group_id"`
	UserID             uuid.UUID  `json:"user_id"`
	Role               string     `json:"role"`
	StudentID          *uuid.UUID `json:"student_id,omitempty"`
	JoinedAt           time.Time  `json:"joined_at"`
}

/* =========================================================
   CONVERTERS
========================================================= */

func (in StudyGroupCreateDTO) ToModel(ownerTeacherID uuid.UUID, inviteCode string) model.StudyGroup {
	return model.StudyGroup{
		StudyGroupOwnerTeacherID:    ownerTeacherID,
		StudyGroupName:              in.Name,
		StudyGroupSubject:           in.Subject,
		StudyGroupLessonRateIDR:     in.LessonRateIDR,
		StudyGroupContractedLessons: in.ContractedLessons,
		StudyGroupInviteCode:        inviteCode,
	}
}

func ApplyStudyGroupUpdate(m *model.StudyGroup, in StudyGroupUpdateDTO) {
	if in.Name != nil {
		m.StudyGroupName = *in.Name
	}
	if in.Subject != nil {
		m.StudyGroupSubject = in.Subject
	}
	if in.LessonRateIDR != nil {
		m.StudyGroupLessonRateIDR = in.LessonRateIDR
	}
	if in.ContractedLessons != nil {
		m.StudyGroupContractedLessons = in.ContractedLessons
	}
}

func ToStudyGroupResponse(m model.StudyGroup) StudyGroupResponse {
	return StudyGroupResponse{
		StudyGroupID:      m.StudyGroupID,
		OwnerTeacherID:    m.StudyGroupOwnerTeacherID,
		Name:              m.StudyGroupName,
		Subject:           m.StudyGroupSubject,
		LessonRateIDR:     m.StudyGroupLessonRateIDR,
		ContractedLessons: m.StudyGroupContractedLessons,
		InviteCode:        m.StudyGroupInviteCode,
		CreatedAt:         m.StudyGroupCreatedAt,
	}
}

func ToStudyGroupResponses(items []model.StudyGroup) []StudyGroupResponse {
	out := make([]StudyGroupResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToStudyGroupResponse(it))
	}
	return out
}

func ToStudyGroupMemberResponse(m model.StudyGroupMember) StudyGroupMemberResponse {
	return StudyGroupMemberResponse{
		StudyGroupMemberID: m.StudyGroupMemberID,
		GroupID:            m.StudyGroupMemberGroupID,
		UserID:             m.StudyGroupMemberUserID,
		Role:               string(m.StudyGroupMemberRole),
		StudentID:          m.StudyGroupMemberStudentID,
		JoinedAt:           m.StudyGroupMemberJoinedAt,
	}
}

func ToStudyGroupMemberResponses(items []model.StudyGroupMember) []StudyGroupMemberResponse {
	out := make([]StudyGroupMemberResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToStudyGroupMemberResponse(it))
	}
	return out
}
