package studio

import "time"

// AfterFunc schedules fn after d and returns a function that cancels it.
// time.AfterFunc satisfies it via DefaultAfterFunc.
type AfterFunc func(d time.Duration, fn func()) (stop func() bool)

// DefaultAfterFunc schedules on the runtime timer
func DefaultAfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// banner holds the status/error messages. Every message change bumps seq;
// a scheduled clear only fires if seq is unchanged since it was scheduled.
type banner struct {
	seq    uint64
	status string
	err    string
	stop   func() bool
}

func (b *banner) show(status, errMsg string) {
	b.cancel()
	b.seq++
	b.status = status
	b.err = errMsg
}

func (b *banner) dismiss() {
	b.show("", "")
}

func (b *banner) cancel() {
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}
