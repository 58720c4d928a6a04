package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Commands understood by the forwarder.
const (
	MethodWrite  = "write"
	CloseMessage = "close"
)

// FieldNames lists the form keys of a sheet row in wire order.
// Token i of a write command is submitted under FieldNames[i].
var FieldNames = [...]string{
	"method",
	"WorkSheetName",
	"Time",
	"Lon",
	"Lat",
	"Tem1", "Hum1", "Vol1",
	"Tem2", "Hum2", "Vol2",
	"Tem3", "Hum3", "Vol3",
	"Tem4", "Hum4", "Vol4",
	"Weight",
}

// RecordFieldCount is the minimum number of tokens a write command needs.
const RecordFieldCount = len(FieldNames)

// SensorRecord is one sheet row decoded from a write command.
// Values are kept as the raw text tokens.
type SensorRecord struct {
	values [RecordFieldCount]string
}

// NewSensorRecord maps tokens positionally onto the record fields.
// Tokens past the last field are ignored.
func NewSensorRecord(tokens []string) (SensorRecord, error) {
	var r SensorRecord
	if len(tokens) < RecordFieldCount {
		return r, fmt.Errorf("%w: got %d tokens, need %d", ErrMalformedMessage, len(tokens), RecordFieldCount)
	}
	copy(r.values[:], tokens[:RecordFieldCount])
	return r, nil
}

// Get returns the value of the named field, or "" for unknown names.
func (r SensorRecord) Get(name string) string {
	for i, n := range FieldNames {
		if n == name {
			return r.values[i]
		}
	}
	return ""
}

// Method returns the command token of the record.
func (r SensorRecord) Method() string { return r.values[0] }

// WorkSheetName returns the target worksheet.
func (r SensorRecord) WorkSheetName() string { return r.values[1] }

// Form returns the record as form values keyed by FieldNames.
func (r SensorRecord) Form() url.Values {
	form := make(url.Values, RecordFieldCount)
	for i, name := range FieldNames {
		form.Set(name, r.values[i])
	}
	return form
}

// Message is a decoded datagram split into its comma separated tokens.
type Message struct {
	Raw    string
	Tokens []string
}

// ParseMessage splits a decoded datagram on commas.
func ParseMessage(text string) Message {
	return Message{
		Raw:    text,
		Tokens: strings.Split(text, ","),
	}
}

// IsClose reports whether the whole message is the close sentinel.
func (m Message) IsClose() bool {
	return m.Raw == CloseMessage
}

// IsWrite reports whether the first token is the write command.
func (m Message) IsWrite() bool {
	return len(m.Tokens) > 0 && m.Tokens[0] == MethodWrite
}

// Joined returns all tokens joined back with commas.
func (m Message) Joined() string {
	return strings.Join(m.Tokens, ",")
}
