package models

// Application records a job seeker applying to a posting. Applicant contact
// details are captured at apply time so later profile edits do not rewrite
// history.
type Application struct {
	BaseModel

	ApplicantID string `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobID       string `gorm:"type:uuid;not null;index" json:"job_id"`

	ApplicantName  string `gorm:"type:varchar(255);not null" json:"applicant_name"`
	ApplicantEmail string `gorm:"type:varchar(255);not null" json:"applicant_email"`
	ApplicantPhone string `gorm:"type:varchar(64)" json:"applicant_phone"`
	ResumeLink     string `gorm:"type:text" json:"resume_link"`

	Status ApplicationStatus `gorm:"type:varchar(16);default:'Pending';index" json:"status"`
}
