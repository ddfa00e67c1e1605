package dispatcher

import (
	"github.com/jwoglom/glycemiabot/pkg/command"
	"github.com/jwoglom/glycemiabot/pkg/dosage"
	"github.com/jwoglom/glycemiabot/pkg/reply"

	log "github.com/sirupsen/logrus"
)

// CommandHandler handles one kind of parsed command
type CommandHandler interface {
	// HandleCommand turns a command into a response. A nil response means
	// nothing is sent.
	HandleCommand(cmd command.Command) *Response

	// Kind returns the command kind this handler processes
	Kind() command.Kind
}

// Response describes what the dispatcher should do for a message
type Response struct {
	Decision dosage.Decision

	// Text to reply with
	Text string

	// Whether to arm the standing reminder after replying
	ArmReminder bool
}

// GreetingHandler answers the greeting keyword
type GreetingHandler struct{}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// Kind returns the command kind this handler processes
func (h *GreetingHandler) Kind() command.Kind {
	return command.KindGreeting
}

// HandleCommand replies with the greeting and does not arm a reminder
func (h *GreetingHandler) HandleCommand(cmd command.Command) *Response {
	decision := dosage.Greeting()
	text, _ := reply.Compose(decision, cmd.Reading)
	return &Response{
		Decision: decision,
		Text:     text,
	}
}

// ReadingHandler computes a dosage recommendation for a glycemia reading
type ReadingHandler struct{}

// NewReadingHandler creates a new reading handler
func NewReadingHandler() *ReadingHandler {
	return &ReadingHandler{}
}

// Kind returns the command kind this handler processes
func (h *ReadingHandler) Kind() command.Kind {
	return command.KindReading
}

// HandleCommand evaluates the reading. Every numeric reading arms the
// reminder, whatever its category.
func (h *ReadingHandler) HandleCommand(cmd command.Command) *Response {
	decision := dosage.Compute(cmd.Reading)
	log.Infof("Glycemia %d mg/dL (fasting=%v): %s, units=%d",
		cmd.Reading.Value, cmd.Reading.Fasting, decision.Category, decision.Units)

	text, ok := reply.Compose(decision, cmd.Reading)
	if !ok {
		return nil
	}
	return &Response{
		Decision:    decision,
		Text:        text,
		ArmReminder: true,
	}
}

// IgnoreHandler silently drops messages that are neither a greeting nor a reading
type IgnoreHandler struct{}

// NewIgnoreHandler creates a new ignore handler
func NewIgnoreHandler() *IgnoreHandler {
	return &IgnoreHandler{}
}

// Kind returns the command kind this handler processes
func (h *IgnoreHandler) Kind() command.Kind {
	return command.KindUnrecognized
}

// HandleCommand logs and returns no response
func (h *IgnoreHandler) HandleCommand(cmd command.Command) *Response {
	log.Info("Message ignored: not a glycemia reading or greeting")
	return nil
}
