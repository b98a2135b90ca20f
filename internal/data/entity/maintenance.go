package entity

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusApproved   MaintenanceStatus = "approved"
	MaintenanceStatusRejected   MaintenanceStatus = "rejected"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
)

type PoolImpact string

const (
	PoolImpactNone       PoolImpact = "none"
	PoolImpactRestricted PoolImpact = "restricted"
	PoolImpactClosed     PoolImpact = "closed"
)

// MaintenanceDetails holds the nested report records, stored as jsonb
type MaintenanceDetails struct {
	ChemicalReadings []ChemicalReading `json:"chemical_readings,omitempty"`
	WaterTests       []WaterTest       `json:"water_tests,omitempty"`
	Equipment        []EquipmentCheck  `json:"equipment,omitempty"`
	Supplies         []SupplyItem      `json:"supplies,omitempty"`
	Tasks            []TaskItem        `json:"tasks,omitempty"`
	SafetyChecks     []SafetyCheck     `json:"safety_checks,omitempty"`
}

type ChemicalReading struct {
	Chemical string  `json:"chemical"`
	Level    float64 `json:"level"`
	Unit     string  `json:"unit"`
}

type WaterTest struct {
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	InRange   bool    `json:"in_range"`
}

type EquipmentCheck struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
	Notes     string `json:"notes,omitempty"`
}

type SupplyItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Restock  bool   `json:"restock"`
}

type TaskItem struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

type SafetyCheck struct {
	Item   string `json:"item"`
	Passed bool   `json:"passed"`
	Notes  string `json:"notes,omitempty"`
}

type Maintenance struct {
	Base
	Type          string              `db:"type"`
	Priority      MaintenancePriority `db:"priority"`
	Status        MaintenanceStatus   `db:"status"`
	ScheduledDate time.Time           `db:"scheduled_date"`
	PoolImpact    PoolImpact          `db:"pool_impact"`
	Details       MaintenanceDetails  `db:"details"`
	Notes         *string             `db:"notes"`
	ReportedBy    uuid.UUID           `db:"reported_by"`
	ReviewedBy    *uuid.UUID          `db:"reviewed_by"`
}
