package reminder

import (
	"sync"
	"time"

	"github.com/jwoglom/glycemiabot/pkg/gateway"

	log "github.com/sirupsen/logrus"
)

// DefaultDelay is how long after a dosage reply the standing reminder is sent
const DefaultDelay = 3000 * time.Millisecond

// AfterFunc schedules f to run once after d. It matches time.AfterFunc
// without exposing the timer, so armed tasks cannot be cancelled.
type AfterFunc func(d time.Duration, f func())

// Task is a single pending reminder bound to the sink it will reply on.
// A task fires at most once and is dropped after firing.
type Task struct {
	sink gateway.ReplySink
	text string
	once sync.Once
}

// Fire sends the reminder. Calls after the first are no-ops.
func (t *Task) Fire() {
	t.once.Do(func() {
		if err := t.sink.Reply(t.text); err != nil {
			log.Warnf("Failed to send reminder: %v", err)
			return
		}
		log.Debug("Reminder sent")
	})
}

// Scheduler arms reminder tasks. It keeps no reference to armed tasks.
type Scheduler struct {
	delay     time.Duration
	text      string
	afterFunc AfterFunc
}

// NewScheduler creates a new scheduler that sends text after delay
func NewScheduler(delay time.Duration, text string) *Scheduler {
	return &Scheduler{
		delay: delay,
		text:  text,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// SetAfterFunc replaces the timer primitive used to arm tasks
func (s *Scheduler) SetAfterFunc(afterFunc AfterFunc) {
	s.afterFunc = afterFunc
}

// Delay returns the configured reminder delay
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Arm schedules one reminder on sink. If the process or the gateway goes
// away before the delay elapses the reminder is lost.
func (s *Scheduler) Arm(sink gateway.ReplySink) {
	task := &Task{
		sink: sink,
		text: s.text,
	}
	log.Debugf("Arming reminder in %v", s.delay)
	s.afterFunc(s.delay, task.Fire)
}
