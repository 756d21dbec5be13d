package alert

import "github.com/nuttaponsrpn/Kiki-POS/internal/state"

// Severity classifies an alert banner
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Alert is the process-wide banner slot. There is no queue: a second Show
// overwrites the first, and Close leaves the stale content in place.
type Alert struct {
	Open     bool     `json:"open"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier owns the single alert slot
type Notifier struct {
	slot *state.Value[Alert]
}

// NewNotifier creates a Notifier with a closed, empty slot
func NewNotifier() *Notifier {
	return &Notifier{
		slot: state.NewValue(Alert{Severity: SeverityInfo}),
	}
}

// Show overwrites the slot and opens it. Last write wins.
func (n *Notifier) Show(title, message string, severity Severity) {
	if severity == "" {
		severity = SeverityInfo
	}
	n.slot.Set(Alert{
		Open:     true,
		Title:    title,
		Message:  message,
		Severity: severity,
	})
}

// Close clears the open flag without touching title, message, or severity
func (n *Notifier) Close() {
	n.slot.Update(func(a Alert) Alert {
		a.Open = false
		return a
	})
}

// Current returns the slot contents
func (n *Notifier) Current() Alert {
	return n.slot.Get()
}

// Subscribe registers fn to run after every slot change
func (n *Notifier) Subscribe(fn func(Alert)) func() {
	return n.slot.Subscribe(fn)
}
