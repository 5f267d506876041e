// Package viewmodel turns user actions into student store calls and store
// state into display state. Rendering is left to the caller.
package viewmodel

// Kind is the category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notification messages.
const (
	MsgStudentAdded    = "Student Added Successfully"
	MsgFieldsRequired  = "Every field needs a value."
	MsgAddFailed       = "Error Adding Student"
	MsgLoadFailed      = "Error Loading Students"
	MsgStudentDeleted  = "User Deleted Successfully"
	MsgDeleteFailed    = "Error Deleting User"
	MsgDataDeleted     = "Data Deleted Successfully"
	MsgClearFailed     = "Error Deleting Data"
	MsgNothingSelected = "Select a student first."
)

type Notification struct {
	Kind    Kind
	Message string
}

// Notifier presents notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	Notifications []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.Notifications = append(r.Notifications, n)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}
