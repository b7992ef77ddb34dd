// Package proto implements the inline command protocol spoken by the
// hashmap server: one command per line, whitespace-separated arguments,
// and typed single-line replies (+OK, :n, -ERR, *N arrays of $bulk items).
package proto

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// MaxInlineLength bounds a single command line, terminator excluded.
const MaxInlineLength = 64 * 1024

var (
	ErrEmptyCommand  = errors.New("empty command")
	ErrInvalidFormat = errors.New("invalid command format")
)

// Command is one parsed client request.
type Command struct {
	Name string
	Args []string
}

// Parse decodes a single command line. The trailing \n or \r\n may still be
// present. Command names are folded to upper case; a blank line yields
// ErrEmptyCommand.
func Parse(line []byte) (Command, error) {
	if len(line) > MaxInlineLength {
		return Command{}, fmt.Errorf("%w: line exceeds %d bytes", ErrInvalidFormat, MaxInlineLength)
	}

	line = bytes.TrimRight(line, "\r\n")
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	return Command{
		Name: strings.ToUpper(fields[0]),
		Args: fields[1:],
	}, nil
}

func AppendOK(b *bytebufferpool.ByteBuffer) {
	b.WriteString("+OK\r\n")
}

func AppendPong(b *bytebufferpool.ByteBuffer) {
	b.WriteString("+PONG\r\n")
}

func AppendInt(b *bytebufferpool.ByteBuffer, n int) {
	b.WriteByte(':')
	b.B = strconv.AppendInt(b.B, int64(n), 10)
	b.WriteString("\r\n")
}

func AppendError(b *bytebufferpool.ByteBuffer, msg string) {
	b.WriteByte('-')
	b.WriteString(msg)
	b.WriteString("\r\n")
}

// AppendArray writes a *N header followed by each item as a $len-prefixed
// bulk string.
func AppendArray(b *bytebufferpool.ByteBuffer, items []string) {
	b.WriteByte('*')
	b.B = strconv.AppendInt(b.B, int64(len(items)), 10)
	b.WriteString("\r\n")
	for _, item := range items {
		b.WriteByte('$')
		b.B = strconv.AppendInt(b.B, int64(len(item)), 10)
		b.WriteString("\r\n")
		b.WriteString(item)
		b.WriteString("\r\n")
	}
}
