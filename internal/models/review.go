package models

// Review is platform feedback left by a user or employer. Reviews only appear
// publicly once approved by an admin.
type Review struct {
	BaseModel

	AuthorID   string `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName string `gorm:"type:varchar(255);not null" json:"author_name"`
	Role       Role   `gorm:"type:varchar(16);not null" json:"role"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Approved bool `gorm:"default:false;index" json:"approved"`
}
