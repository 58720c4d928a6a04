package models

import "time"

// ForwarderStats is a point-in-time view of the forwarder counters.
type ForwarderStats struct {
	Received        uint64    `json:"received"`
	Forwarded       uint64    `json:"forwarded"`
	Rejected        uint64    `json:"rejected"`
	Ignored         uint64    `json:"ignored"`
	Undecodable     uint64    `json:"undecodable"`
	ForwardFailures uint64    `json:"forward_failures"`
	StartedAt       time.Time `json:"started_at"`
}
