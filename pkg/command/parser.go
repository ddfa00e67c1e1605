package command

import (
	"strconv"
	"strings"
)

// GreetingKeyword is the literal that triggers the greeting reply
const GreetingKeyword = "oi"

// FastingKeyword marks a reading as taken in fasting mode
const FastingKeyword = "jejum"

// Kind identifies what a chat message was interpreted as
type Kind int

const (
	KindUnrecognized Kind = iota
	KindGreeting
	KindReading
)

func (k Kind) String() string {
	switch k {
	case KindGreeting:
		return "Greeting"
	case KindReading:
		return "Reading"
	default:
		return "Unrecognized"
	}
}

// Reading is a glycemia value in mg/dL taken from a single message
type Reading struct {
	Value   int
	Fasting bool
}

// Command is the typed interpretation of a raw chat message
type Command struct {
	Kind    Kind
	Reading Reading
}

// Parse interprets raw message text
func Parse(text string) Command {
	trimmed := strings.TrimSpace(text)

	if strings.EqualFold(trimmed, GreetingKeyword) {
		return Command{Kind: KindGreeting}
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return Command{Kind: KindUnrecognized}
	}

	value, ok := leadingInt(fields[0])
	if !ok {
		return Command{Kind: KindUnrecognized}
	}

	return Command{
		Kind: KindReading,
		Reading: Reading{
			Value:   value,
			Fasting: strings.Contains(strings.ToLower(trimmed), FastingKeyword),
		},
	}
}

// leadingInt reads an optionally signed integer at the start of token and
// ignores whatever follows it, so "150mg" yields 150. A "0x" or "0X" prefix
// switches to hexadecimal digits ("0x1A" yields 26).
func leadingInt(token string) (int, bool) {
	pos := 0
	negative := false
	if pos < len(token) && (token[pos] == '+' || token[pos] == '-') {
		negative = token[pos] == '-'
		pos++
	}

	base := 10
	isDigit := isDecimalDigit
	if len(token)-pos >= 2 && token[pos] == '0' && (token[pos+1] == 'x' || token[pos+1] == 'X') {
		base = 16
		isDigit = isHexDigit
		pos += 2
	}

	end := pos
	for end < len(token) && isDigit(token[end]) {
		end++
	}
	if end == pos {
		return 0, false
	}

	digits := token[pos:end]
	if negative {
		digits = "-" + digits
	}
	value, err := strconv.ParseInt(digits, base, strconv.IntSize)
	if err != nil {
		// out of range for int
		return 0, false
	}
	return int(value), true
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
