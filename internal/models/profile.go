package models

import "gorm.io/datatypes"

// UserProfile holds a job seeker's public details, captured at signup and
// denormalized onto applications at apply time.
type UserProfile struct {
	BaseModel

	AccountID  string         `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	FullName   string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email      string         `gorm:"type:varchar(255);not null" json:"email"`
	Phone      string         `gorm:"type:varchar(64)" json:"phone"`
	ResumeLink string         `gorm:"type:text" json:"resume_link"`
	Skills     datatypes.JSON `json:"skills"`
}

// EmployerProfile holds a company's public details.
type EmployerProfile struct {
	BaseModel

	AccountID   string `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	CompanyName string `gorm:"type:varchar(255);not null" json:"company_name"`
	Email       string `gorm:"type:varchar(255);not null" json:"email"`
	Phone       string `gorm:"type:varchar(64)" json:"phone"`
	About       string `gorm:"type:text" json:"about"`
	Website     string `gorm:"type:text" json:"website"`
}
