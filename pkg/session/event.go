package session

import (
	"strconv"
	"strings"
)

// Event is one server-sent event. Data must not contain newlines; JSON
// payloads produced by encoding/json never do.
type Event struct {
	ID   uint64
	Name string
	Data []byte
}

// String renders the event in text/event-stream framing.
func (e Event) String() string {
	var b strings.Builder
	if e.ID > 0 {
		b.WriteString("id: ")
		b.WriteString(strconv.FormatUint(e.ID, 10))
		b.WriteByte('\n')
	}
	if e.Name != "" {
		b.WriteString("event: ")
		b.WriteString(e.Name)
		b.WriteByte('\n')
	}
	b.WriteString("data: ")
	b.Write(e.Data)
	b.WriteString("\n\n")
	return b.String()
}
