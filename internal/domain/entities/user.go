package entities

import (
	"fmt"
	"time"
)

// UserIdentity is the outcome of one credential verification. It is never
// persisted. Degraded marks an identity assigned as a fallback because the
// identity provider could not be reached.
type UserIdentity struct {
	UserID   string
	Email    string
	Degraded bool
}

// Anonymous reports whether this identity carries no verified user.
func (u *UserIdentity) Anonymous() bool {
	return u.UserID == ""
}

// Gender values match the stored profile representation.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// UserProfile holds demographic attributes used to enrich search requests.
type UserProfile struct {
	UserID    string    `json:"-" db:"user_id"`
	Age       int       `json:"age" db:"age"`
	Gender    string    `json:"gender" db:"gender"`
	LivesInUS bool      `json:"lives_in_us" db:"lives_in_us"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SearchProfile converts the stored profile into its outbound search shape.
func (p *UserProfile) SearchProfile() *SearchProfile {
	if p == nil {
		return nil
	}
	return &SearchProfile{
		Age:       p.Age,
		Gender:    p.Gender,
		LivesInUS: p.LivesInUS,
	}
}

// Validate checks the profile attribute bounds.
func (p *UserProfile) Validate() error {
	if p.Age < 1 || p.Age > 150 {
		return fmt.Errorf("age must be between 1 and 150, got %d", p.Age)
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("gender must be one of %s, %s, %s", GenderMale, GenderFemale, GenderOther)
	}
	return nil
}
