package reservation

// Level is the severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a message meant for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices as the state changes.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}

// Collector records notices in order. The zero value is ready to use.
type Collector struct {
	Notices []Notice
}

// Notify appends n.
func (c *Collector) Notify(n Notice) { c.Notices = append(c.Notices, n) }

// Last returns the most recent notice, or the zero notice when there is none.
func (c *Collector) Last() Notice {
	if len(c.Notices) == 0 {
		return Notice{}
	}
	return c.Notices[len(c.Notices)-1]
}
