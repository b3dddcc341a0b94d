package models

// NewsAudience selects which inboxes a published post is announced to.
type NewsAudience string

const (
	AudienceUsers     NewsAudience = "user"
	AudienceEmployers NewsAudience = "employer"
	AudienceAll       NewsAudience = "all"
)

// Valid reports whether the audience is a known value.
func (a NewsAudience) Valid() bool {
	switch a {
	case AudienceUsers, AudienceEmployers, AudienceAll:
		return true
	}
	return false
}

// NewsPost is an announcement authored by an admin. Publishing fans out one
// notification per member of the selected audience.
type NewsPost struct {
	BaseModel

	Title    string       `gorm:"type:varchar(255);not null" json:"title"`
	Body     string       `gorm:"type:text" json:"body"`
	Audience NewsAudience `gorm:"type:varchar(16);not null" json:"audience"`
}
