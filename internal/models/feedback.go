package models

import "gorm.io/datatypes"

// RejectionReasons is the fixed checklist an admin picks from when rejecting
// a job posting. At least one selection is required.
var RejectionReasons = []string{
	"Incomplete job details",
	"Invalid salary range",
	"Missing image or branding",
	"Poor grammar or tone",
	"Others",
}

// SuggestionCategories are the five fixed skill areas an employer rates when
// rejecting an application with feedback.
var SuggestionCategories = []string{
	"Communication",
	"Technical Knowledge",
	"Presentation",
	"Professional Experience",
	"Resume Quality",
}

// SuggestionRatings is the four-point ordinal scale used for each category.
var SuggestionRatings = []string{"Poor", "Average", "Good", "Excellent"}

// JobRejectionFeedback stores the admin's reasons for rejecting a posting,
// keyed by job and employer.
type JobRejectionFeedback struct {
	BaseModel

	JobID      string `gorm:"type:uuid;not null;index" json:"job_id"`
	EmployerID string `gorm:"type:uuid;not null;index" json:"employer_id"`

	SelectedReasons datatypes.JSON `gorm:"not null" json:"selected_reasons"`
	Comment         string         `gorm:"type:text" json:"comment"`
}

// RejectedSuggestion stores structured feedback an employer may attach when
// rejecting an application. It is keyed by the applicant plus the job title
// and company name as shown to the applicant, not by the application row.
type RejectedSuggestion struct {
	BaseModel

	ApplicantID string `gorm:"type:uuid;not null;index" json:"applicant_id"`
	JobTitle    string `gorm:"type:varchar(255);not null" json:"job_title"`
	CompanyName string `gorm:"type:varchar(255);not null" json:"company_name"`

	QuestionsAnswers datatypes.JSON `json:"questions_answers"`
	Comment          string         `gorm:"type:text" json:"comment"`
	VideoLink        string         `gorm:"type:text" json:"video_link"`
}
