package student

import "strings"

// Student is one persisted student record. ID is its only stable identity.
//
// Password is kept in plaintext inside the collection. Callers should mask it
// on display and wrap the storage with the sealed backend to protect it at rest.
type Student struct {
	ID        string `json:"ID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Course    string `json:"course"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Input holds the user-supplied fields of a new student.
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Course    string `json:"course"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Field names an Input field.
type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldCourse    Field = "course"
	FieldUsername  Field = "username"
	FieldPassword  Field = "password"
)

// Fields lists the Input fields in form order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldCourse, FieldUsername, FieldPassword}

// Value returns the value of field f.
func (in Input) Value(f Field) string {
	switch f {
	case FieldFirstName:
		return in.FirstName
	case FieldLastName:
		return in.LastName
	case FieldCourse:
		return in.Course
	case FieldUsername:
		return in.Username
	case FieldPassword:
		return in.Password
	}
	return ""
}

// Blank returns the fields that are empty or whitespace only.
func (in Input) Blank() []Field {
	var blank []Field
	for _, f := range Fields {
		if strings.TrimSpace(in.Value(f)) == "" {
			blank = append(blank, f)
		}
	}
	return blank
}

// FullName renders the name the way the list shows it: "Last, First".
func (s Student) FullName() string {
	return s.LastName + ", " + s.FirstName
}
