package model

import "time"

// Contact is the data structure for a person or organization that we know.
// Id and CreatedAt are assigned by the store; every other field may be empty.
type Contact struct {
	Id        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	Phone     string    `json:"phone"      db:"phone"`
	Company   string    `json:"company"    db:"company"`
	Tags      string    `json:"tags"       db:"tags"`
	Notes     string    `json:"notes"      db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Fields is the mutable part of a Contact: the full field set an edit form
// may submit. Id and CreatedAt are owned by the store and are never part of
// a write payload.
type Fields struct {
	Name    string `json:"name"    db:"name"`
	Email   string `json:"email"   db:"email"`
	Phone   string `json:"phone"   db:"phone"`
	Company string `json:"company" db:"company"`
	Tags    string `json:"tags"    db:"tags"`
	Notes   string `json:"notes"   db:"notes"`
}

// Fields returns the mutable field set of the contact, for pre-populating an
// edit form.
func (c Contact) Fields() Fields {
	return Fields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
		Tags:    c.Tags,
		Notes:   c.Notes,
	}
}
