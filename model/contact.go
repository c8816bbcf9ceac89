package model

import "time"

// DateLayout is the wire format for contact birthdays.
const DateLayout = "2006-01-02"

// ContactEntity represents the contact table entity
type ContactEntity struct {
	ID          uint64     `db:"id" json:"id"`
	UserID      uint64     `db:"user_id" json:"-"`
	Name        string     `db:"name" json:"name"`
	Surname     string     `db:"surname" json:"surname"`
	Email       string     `db:"email" json:"email"`
	PhoneNumber string     `db:"phone_number" json:"phone_number"`
	Birthday    *time.Time `db:"birthday" json:"-"`
	ExtraInfo   string     `db:"extra_info" json:"extra_info"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
	UpdatedAt   *time.Time `db:"updated_at" json:"-"`
}

// ContactSearchFilter holds the optional search terms. Nil means the term
// was not supplied; each non-nil term is matched independently.
type ContactSearchFilter struct {
	Name    *string
	Surname *string
	Email   *string
}

// HasFilters reports whether at least one search term was supplied.
func (f *ContactSearchFilter) HasFilters() bool {
	return f != nil && (f.Name != nil || f.Surname != nil || f.Email != nil)
}

// ContactUpdate is a field-presence map for partial updates: nil fields are
// left untouched, non-nil fields overwrite the stored value.
type ContactUpdate struct {
	Name        *string
	Surname     *string
	Email       *string
	PhoneNumber *string
	Birthday    *time.Time
	ExtraInfo   *string
}

// CreateContactRequest for creating a contact
type CreateContactRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Surname     string  `json:"surname" validate:"max=100"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber string  `json:"phone_number" validate:"max=30"`
	Birthday    *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	ExtraInfo   string  `json:"extra_info"`
}

// UpdateContactRequest for partial updates; absent fields keep their stored value
type UpdateContactRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Surname     *string `json:"surname" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
	Birthday    *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	ExtraInfo   *string `json:"extra_info"`
}

// UpdateBirthdayRequest replaces only the date components of the stored birthday
type UpdateBirthdayRequest struct {
	Day   int `json:"day" validate:"required,gte=1,lte=31"`
	Month int `json:"month" validate:"required,gte=1,lte=12"`
	Year  int `json:"year" validate:"required,gte=1,lte=9000"`
}

// ContactResponse is the wire shape of a contact
type ContactResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Birthday    *string `json:"birthday"`
	ExtraInfo   string  `json:"extra_info"`
}

// ToContactResponse maps a contact entity to its wire shape.
func ToContactResponse(c *ContactEntity) *ContactResponse {
	resp := &ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Surname:     c.Surname,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		ExtraInfo:   c.ExtraInfo,
	}
	if c.Birthday != nil {
		b := c.Birthday.Format(DateLayout)
		resp.Birthday = &b
	}
	return resp
}

// ToContactResponses maps a slice of entities, keeping order and duplicates.
func ToContactResponses(contacts []ContactEntity) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, ToContactResponse(&contacts[i]))
	}
	return out
}
