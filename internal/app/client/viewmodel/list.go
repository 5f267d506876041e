package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slog"

	"studentkeeper/internal/domain/student"
)

var (
	ErrNoSelection = errors.New("no student selected")
	ErrNoSuchRow   = errors.New("no such row")
)

// Row is one rendered line of the list. Position is a 1-based label valid for
// the current render only. Deletion always goes through Student.ID.
type Row struct {
	Position string
	Student  student.Student
}

// DetailState is the state of the detail view.
type DetailState int

const (
	DetailClosed DetailState = iota
	DetailOpen
)

func (s DetailState) String() string {
	if s == DetailOpen {
		return "open"
	}
	return "closed"
}

// StudentList backs the student table and its detail view.
type StudentList struct {
	store    StudentStore
	notifier Notifier
	log      *slog.Logger

	rows     []Row
	selected *Row
}

func NewStudentList(store StudentStore, notifier Notifier, log *slog.Logger) *StudentList {
	return &StudentList{
		store:    store,
		notifier: notifier,
		log:      log.With("component", "student_list_vm"),
	}
}

// Load renders the collection into rows with fresh positions. On failure the
// previous rows are kept.
func (vm *StudentList) Load(ctx context.Context) error {
	students, err := vm.store.List(ctx)
	if err != nil {
		vm.log.Error("failed to load students", "error", err)
		vm.notifier.Notify(Notification{Kind: KindError, Message: MsgLoadFailed})
		return fmt.Errorf("load students: %w", err)
	}

	rows := make([]Row, len(students))
	for i, st := range students {
		rows[i] = Row{Position: strconv.Itoa(i + 1), Student: st}
	}
	vm.rows = rows
	return nil
}

// Rows returns a copy of the current render.
func (vm *StudentList) Rows() []Row {
	rows := make([]Row, len(vm.rows))
	copy(rows, vm.rows)
	return rows
}

// SelectRow opens the detail view on row.
func (vm *StudentList) SelectRow(row Row) {
	vm.selected = &row
}

// SelectPosition selects the row labelled position in the current render.
func (vm *StudentList) SelectPosition(position int) (Row, error) {
	label := strconv.Itoa(position)
	for _, row := range vm.rows {
		if row.Position == label {
			vm.SelectRow(row)
			return row, nil
		}
	}
	return Row{}, fmt.Errorf("%w: %d", ErrNoSuchRow, position)
}

// Detail returns the selected row while the detail view is open.
func (vm *StudentList) Detail() (Row, bool) {
	if vm.selected == nil {
		return Row{}, false
	}
	return *vm.selected, true
}

func (vm *StudentList) State() DetailState {
	if vm.selected == nil {
		return DetailClosed
	}
	return DetailOpen
}

// ConfirmDelete deletes the selected student by ID. On success the detail view
// closes and the list reloads. On failure the detail view stays open.
// A failed reload after a successful delete is reported by Load and does not
// fail the delete.
func (vm *StudentList) ConfirmDelete(ctx context.Context) error {
	if vm.selected == nil {
		vm.notifier.Notify(Notification{Kind: KindWarning, Message: MsgNothingSelected})
		return ErrNoSelection
	}
	id := vm.selected.Student.ID

	if err := vm.store.Delete(ctx, id); err != nil {
		vm.log.Error("failed to delete student", "id", id, "error", err)
		vm.notifier.Notify(Notification{Kind: KindError, Message: MsgDeleteFailed})
		return fmt.Errorf("delete student: %w", err)
	}

	vm.selected = nil
	vm.notifier.Notify(Notification{Kind: KindSuccess, Message: MsgStudentDeleted})
	_ = vm.Load(ctx)
	return nil
}

// Dismiss closes the detail view without touching the store.
func (vm *StudentList) Dismiss() {
	vm.selected = nil
}

// ClearAll clears the store. The rows are not reloaded.
func (vm *StudentList) ClearAll(ctx context.Context) error {
	if err := vm.store.Clear(ctx); err != nil {
		vm.log.Error("failed to clear students", "error", err)
		vm.notifier.Notify(Notification{Kind: KindError, Message: MsgClearFailed})
		return fmt.Errorf("clear students: %w", err)
	}

	vm.notifier.Notify(Notification{Kind: KindSuccess, Message: MsgDataDeleted})
	return nil
}
