package core

// Status is the presentation category derived from the remaining balance.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Classification combines the status category with the exhausted flag.
// Exhausted is independent of Status and may co-occur with StatusCritical.
type Classification struct {
	Status    Status
	Exhausted bool
}

// Classify compares remaining against fractions of total:
//
//	remaining <  25% of total -> StatusCritical
//	remaining <  50% of total -> StatusWarning
//	otherwise                 -> StatusOK
//
// Both comparisons are strict. Exhausted is set when remaining <= 0.
// Working on cents keeps the thresholds exact: remaining < total*0.25 is
// evaluated as 4*remaining < total.
func Classify(total, remaining Money) Classification {
	c := Classification{Exhausted: remaining.Cents <= 0}
	switch {
	case 4*remaining.Cents < total.Cents:
		c.Status = StatusCritical
	case 2*remaining.Cents < total.Cents:
		c.Status = StatusWarning
	default:
		c.Status = StatusOK
	}
	return c
}
