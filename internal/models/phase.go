package models

const (
	DefaultCycleLength = 28
	// DefaultPeriodDays is the offset from the start day used as the period
	// end while a cycle is still open.
	DefaultPeriodDays   = 5
	OvulationOffsetDays = 13
	CycleEndOffsetDays  = DefaultCycleLength - 1
)

type Phase string

const (
	PhaseNone       Phase = "none"
	PhasePeriod     Phase = "period"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)
