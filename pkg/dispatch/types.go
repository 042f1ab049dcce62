package dispatch

import "fmt"

// Result is the tally of one dispatch run.
type Result struct {
	Failures  []Failure `json:"failures,omitempty"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
}

// Failure records why one recipient was not sent.
type Failure struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Progress is emitted after each recipient has been handled.
type Progress struct {
	Err       error  // Send or render error for this recipient, nil on success
	Address   string // Recipient address
	Name      string // Recipient display name
	Subject   string // Subject line used for the notice
	Preview   string // Rendered HTML, set in test mode only
	Index     int    // 1-based position of the recipient
	Total     int    // Number of recipients in the run
	Succeeded int    // Running success count
	Failed    int    // Running failure count
}

// Fraction returns the completed share of the run in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Index) / float64(p.Total)
}

// Observer receives progress updates.
type Observer interface {
	Observe(Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Progress)

// Observe implements Observer.
func (f ObserverFunc) Observe(p Progress) { f(p) }

type nopObserver struct{}

func (nopObserver) Observe(Progress) {}

// String describes the result for operators.
func (r *Result) String() string {
	return fmt.Sprintf("succeeded %d, failed %d, total %d", r.Succeeded, r.Failed, r.Total)
}
