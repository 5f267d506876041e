package student

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_Blank(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want []Field
	}{
		{name: "complete", in: ana, want: nil},
		{name: "empty first name", in: Input{LastName: "Cruz", Course: "BSIT", Username: "ana1", Password: "p1"}, want: []Field{FieldFirstName}},
		{name: "whitespace course", in: Input{FirstName: "Ana", LastName: "Cruz", Course: "  ", Username: "ana1", Password: "p1"}, want: []Field{FieldCourse}},
		{name: "all empty", in: Input{}, want: Fields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Blank())
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Missing: []Field{FieldFirstName, FieldPassword}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "all fields required: missing first_name, password", err.Error())
	assert.Equal(t, "all fields required", (&ValidationError{}).Error())
}

func TestStudent_FullName(t *testing.T) {
	s := Student{FirstName: "Ana", LastName: "Cruz"}
	assert.Equal(t, "Cruz, Ana", s.FullName())
}

func TestIsKnownCourse(t *testing.T) {
	assert.True(t, IsKnownCourse("BSIT"))
	assert.True(t, IsKnownCourse("bscrim"))
	assert.False(t, IsKnownCourse("MBA"))
}
