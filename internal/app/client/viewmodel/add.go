package viewmodel

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"studentkeeper/internal/domain/student"
)

// AddStudent backs the add-student form.
type AddStudent struct {
	store    StudentStore
	notifier Notifier
	log      *slog.Logger

	form student.Input
}

func NewAddStudent(store StudentStore, notifier Notifier, log *slog.Logger) *AddStudent {
	return &AddStudent{
		store:    store,
		notifier: notifier,
		log:      log.With("component", "add_student_vm"),
	}
}

// Form returns the current input state.
func (vm *AddStudent) Form() student.Input {
	return vm.form
}

// Validate applies the required-fields rule. The only check is that no field is blank.
func Validate(in student.Input) error {
	if missing := in.Blank(); len(missing) > 0 {
		return &student.ValidationError{Missing: missing}
	}
	return nil
}

// Submit stores in as the form and adds it as a new student.
//
// Blank fields produce a warning and a *student.ValidationError without
// touching the store. A storage failure produces an error notification.
// Either way the form keeps its values. On success the form is reset.
func (vm *AddStudent) Submit(ctx context.Context, in student.Input) (student.Student, error) {
	vm.form = in

	if err := Validate(in); err != nil {
		vm.log.Debug("submit rejected", "error", err)
		vm.notifier.Notify(Notification{Kind: KindWarning, Message: MsgFieldsRequired})
		return student.Student{}, err
	}

	st, err := vm.store.Add(ctx, in)
	if err != nil {
		vm.log.Error("failed to add student", "error", err)
		vm.notifier.Notify(Notification{Kind: KindError, Message: MsgAddFailed})
		return student.Student{}, fmt.Errorf("add student: %w", err)
	}

	vm.form = student.Input{}
	vm.notifier.Notify(Notification{Kind: KindSuccess, Message: MsgStudentAdded})
	return st, nil
}
