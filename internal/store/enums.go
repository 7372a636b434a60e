package store

// Lead ENUMs
const (
	LeadStatusPending   = "pending"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusBooked    = "booked"
	LeadStatusDeclined  = "declined"
)

// Client ENUMs
const (
	ClientTierPilot = "pilot"
	ClientTierT1    = "t1"
	ClientTierT2    = "t2"
	ClientTierVIP   = "vip"
)

const (
	ClientStatusPending   = "pending"
	ClientStatusActive    = "active"
	ClientStatusCompleted = "completed"
	ClientStatusCancelled = "cancelled"
	ClientStatusPastDue   = "past_due"
)

const (
	ClientSourceLeadConversion = "lead_conversion"
	ClientSourceDirect         = "direct"
)

// Shoot ENUMs
const (
	ShootTypePilot    = "pilot"
	ShootTypeStandard = "standard"
	ShootTypePremium  = "premium"
	ShootTypeVIP      = "vip"
)

const (
	ShootStatusScheduled  = "scheduled"
	ShootStatusConfirmed  = "confirmed"
	ShootStatusInProgress = "in_progress"
	ShootStatusCompleted  = "completed"
	ShootStatusDelivered  = "delivered"
	ShootStatusCancelled  = "cancelled"
)

// Invoice ENUMs
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusRefunded  = "refunded"
)
