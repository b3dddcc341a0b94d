package models

import (
	"time"

	"gorm.io/datatypes"
)

// NoSkillsSentinel is stored when an employer submits a posting without any
// required skills.
const NoSkillsSentinel = "no skills provided from company"

// JobPosting is an employer's job advertisement. Moderation and operational
// status are independent axes: only an Approved posting that is also Open is
// visible to job seekers.
type JobPosting struct {
	BaseModel

	EmployerID  string `gorm:"type:uuid;not null;index" json:"employer_id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Location    string `gorm:"type:varchar(255)" json:"location"`
	Salary      string `gorm:"type:varchar(128)" json:"salary"`
	Description string `gorm:"type:text" json:"description"`

	RequiredSkills      datatypes.JSON `json:"required_skills"`
	ApplicationDeadline *time.Time     `json:"application_deadline"`

	ModerationStatus  ModerationStatus  `gorm:"type:varchar(16);default:'Pending';index" json:"moderation_status"`
	OperationalStatus OperationalStatus `gorm:"type:varchar(16);default:'Open'" json:"operational_status"`
}

// VisibleToSeekers reports whether the posting appears in search results.
func (j *JobPosting) VisibleToSeekers() bool {
	return j.ModerationStatus == ModerationApproved && j.OperationalStatus == JobOpen
}
