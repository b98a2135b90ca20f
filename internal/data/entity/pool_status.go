package entity

import (
	"time"

	"github.com/google/uuid"
)

type PoolState string

const (
	PoolStateOpen       PoolState = "open"
	PoolStateClosed     PoolState = "closed"
	PoolStateRestricted PoolState = "restricted"
)

// PoolStatus is an admin-set facility status record. The newest non-expired
// record with ManualOverride wins over any computed status.
type PoolStatus struct {
	BaseSimple
	Status         PoolState  `db:"status"`
	Message        *string    `db:"message"`
	ManualOverride bool       `db:"manual_override"`
	EffectiveUntil *time.Time `db:"effective_until"`
	MaintenanceID  *uuid.UUID `db:"maintenance_id"`
	SetBy          uuid.UUID  `db:"set_by"`
}
