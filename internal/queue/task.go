package queue

type TaskType string

const (
	TaskTypeNotification TaskType = "notification"
)

// NotificationTask is one rendered email waiting on the notification stream.
type NotificationTask struct {
	NotificationID int64
	Kind           string
	To             string
	Subject        string
	Body           string
	TraceID        string
	Attempt        int
}
