package models

import "time"

// InterviewSchedule binds exactly one interview to an application. The unique
// index on ApplicationID enforces the at-most-one-active-schedule rule at the
// data layer rather than only in the interface.
type InterviewSchedule struct {
	BaseModel

	ApplicationID string `gorm:"type:uuid;uniqueIndex;not null" json:"application_id"`

	InterviewDate time.Time `gorm:"not null;index" json:"interview_date"`
	InterviewTime string    `gorm:"type:varchar(16);not null" json:"interview_time"`
	MeetingLink   string    `gorm:"type:text" json:"meeting_link"`
}
