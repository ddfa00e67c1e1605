// Package gateway defines the boundary between the bot and the chat network
// that delivers messages to it.
package gateway

// ReplySink sends text back to the chat a message came from
type ReplySink interface {
	Reply(text string) error
}

// ReplySinkFunc adapts a function to a ReplySink
type ReplySinkFunc func(text string) error

// Reply calls f(text)
func (f ReplySinkFunc) Reply(text string) error {
	return f(text)
}

// IncomingMessageHandler is implemented by whatever consumes inbound chat
// messages. Gateways call it once per message, with a sink bound to the
// originating chat.
type IncomingMessageHandler interface {
	OnIncomingMessage(text string, sink ReplySink)
}
