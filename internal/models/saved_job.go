package models

// SavedJob bookmarks a posting for a job seeker.
type SavedJob struct {
	BaseModel

	ApplicantID string `gorm:"type:uuid;not null;uniqueIndex:idx_saved_applicant_job" json:"applicant_id"`
	JobID       string `gorm:"type:uuid;not null;uniqueIndex:idx_saved_applicant_job" json:"job_id"`
}
