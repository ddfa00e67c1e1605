package dispatcher

import (
	"github.com/jwoglom/glycemiabot/pkg/command"
	"github.com/jwoglom/glycemiabot/pkg/gateway"
	"github.com/jwoglom/glycemiabot/pkg/reminder"

	log "github.com/sirupsen/logrus"
)

// Dispatcher routes inbound chat messages to command handlers and sends
// their replies. It holds no per-message state, so concurrent messages
// from different chats need no coordination.
type Dispatcher struct {
	handlers  map[command.Kind]CommandHandler
	scheduler *reminder.Scheduler

	// Default handler for kinds without a registered handler
	defaultHandler CommandHandler
}

// New creates a new dispatcher that arms reminders on scheduler
func New(scheduler *reminder.Scheduler) *Dispatcher {
	d := &Dispatcher{
		handlers:  make(map[command.Kind]CommandHandler),
		scheduler: scheduler,
	}

	d.registerHandlers()

	return d
}

func (d *Dispatcher) registerHandlers() {
	d.RegisterHandler(NewGreetingHandler())
	d.RegisterHandler(NewReadingHandler())

	d.SetDefaultHandler(NewIgnoreHandler())

	log.Debugf("Registered %d command handlers", len(d.handlers))
}

// RegisterHandler registers a command handler, replacing any existing
// handler for the same kind
func (d *Dispatcher) RegisterHandler(handler CommandHandler) {
	d.handlers[handler.Kind()] = handler
	log.Tracef("Registered handler: %s", handler.Kind())
}

// SetDefaultHandler sets the handler used for unregistered kinds
func (d *Dispatcher) SetDefaultHandler(handler CommandHandler) {
	d.defaultHandler = handler
}

// OnIncomingMessage handles one inbound message to completion. Nothing is
// returned to the gateway; delivery failures are only logged.
func (d *Dispatcher) OnIncomingMessage(text string, sink gateway.ReplySink) {
	cmd := command.Parse(text)
	log.Debugf("Dispatching message: kind=%s", cmd.Kind)

	handler, exists := d.handlers[cmd.Kind]
	if !exists {
		handler = d.defaultHandler
	}
	if handler == nil {
		log.Warnf("No handler registered for command kind: %s", cmd.Kind)
		return
	}

	response := handler.HandleCommand(cmd)
	if response == nil {
		return
	}

	if err := sink.Reply(response.Text); err != nil {
		// no reminder for a reply that never arrived
		log.Errorf("Failed to send %s reply: %v", response.Decision.Category, err)
		return
	}

	if response.ArmReminder && d.scheduler != nil {
		d.scheduler.Arm(sink)
	}
}

// GetStats returns dispatcher statistics
func (d *Dispatcher) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"registeredHandlers": len(d.handlers),
	}
	if d.scheduler != nil {
		stats["reminderDelay"] = d.scheduler.Delay().String()
	}
	return stats
}
