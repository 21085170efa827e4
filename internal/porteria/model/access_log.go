package model

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionEntry Direction = "entrada"
	DirectionExit  Direction = "salida"
)

func (d Direction) Valid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// AccessLog is one persisted entry or exit event. PersonID and
// OrganizationID are nil when the identifier matched nobody.
type AccessLog struct {
	ID             uuid.UUID `json:"id"`
	PersonID       *int64    `json:"person_id,omitempty"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	RUT            string    `json:"rut"`
	Direction      Direction `json:"direction"`
	Allowed        bool      `json:"allowed"`
	Status         Status    `json:"status"`
	Reason         string    `json:"reason"`
	Gate           string    `json:"gate,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// AccessLogFilter narrows ListAccessLogs. Zero fields match everything.
type AccessLogFilter struct {
	RUT       string
	Direction Direction
	Limit     int
}

const DefaultAccessLogLimit = 50
