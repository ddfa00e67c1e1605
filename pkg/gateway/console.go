package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
)

// MaxLineBytes is the longest console line delivered as a message. Longer
// lines are dropped like any other unrecognized message.
const MaxLineBytes = 64 * 1024

// Console is a gateway that reads one message per line and writes replies
// to an output stream. It is used for local runs in place of a chat client.
type Console struct {
	in  io.Reader
	out io.Writer
	mtx sync.Mutex
}

// NewConsole creates a new console gateway
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  in,
		out: out,
	}
}

// Reply writes a reply to the output stream. Safe for concurrent use since
// reminders fire from their own goroutines.
func (c *Console) Reply(text string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, err := fmt.Fprintln(c.out, text); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}
	return nil
}

// Run delivers every input line to handler until the input ends or ctx is
// done. A clean end of input returns nil.
//
// The reading goroutine cannot interrupt a blocked Read, so after ctx is
// cancelled it stays parked on the input until that input returns (for
// stdin, until the process exits).
func (c *Console) Run(ctx context.Context, handler IncomingMessageHandler) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		reader := bufio.NewReader(c.in)
		for {
			line, tooLong, err := readLine(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			if tooLong {
				log.Warnf("Message ignored: console line exceeds %d bytes", MaxLineBytes)
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Console gateway ready, type a glycemia reading (e.g. \"180\" or \"95 jejum\")")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read input: %w", err)
				default:
				}
				log.Debug("Console input closed")
				return nil
			}
			log.Debugf("Received console message: %s", line)
			handler.OnIncomingMessage(line, c)
		}
	}
}

// readLine reads one line without its line ending. Lines longer than
// MaxLineBytes are consumed up to their end and reported with tooLong set.
// A final line without a trailing newline is still returned.
func readLine(reader *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
		partial bool
	)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && partial {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		partial = true

		if !tooLong {
			if len(buf)+len(chunk) > MaxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
