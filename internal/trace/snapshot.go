package trace

import (
	"fmt"
)

// Family groups payload variants that share a rendering strategy.
type Family int

const (
	FamilySequence Family = iota + 1
	FamilyInterval
	FamilyEvent
)

func (f Family) String() string {
	switch f {
	case FamilySequence:
		return "sequence"
	case FamilyInterval:
		return "interval"
	case FamilyEvent:
		return "event"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Label names the kind of step a snapshot records.
type Label string

const (
	LabelSetup     Label = "setup"
	LabelSort      Label = "sort"
	LabelCompare   Label = "compare"
	LabelSwap      Label = "swap"
	LabelShift     Label = "shift"
	LabelPlace     Label = "place"
	LabelWrite     Label = "write"
	LabelHeapify   Label = "heapify"
	LabelExtract   Label = "extract"
	LabelDivide    Label = "divide"
	LabelPivot     Label = "pivot"
	LabelKey       Label = "key"
	LabelEarlyExit Label = "early-exit"
	LabelConsider  Label = "consider"
	LabelSelect    Label = "select"
	LabelReject    Label = "reject"
	LabelTake      Label = "take"
	LabelPartial   Label = "partial"
	LabelSkip      Label = "skip"
	LabelAssign    Label = "assign"
	LabelFree      Label = "free"
	LabelReset     Label = "reset"
	LabelExtend    Label = "extend"
	LabelBest      Label = "best"
	LabelResult    Label = "result"
	LabelEmpty     Label = "empty"
)

// Snapshot is one recorded instant of algorithm progress.
type Snapshot struct {
	Label       Label
	Explanation string
	Lines       []int
	Payload     Payload
}

// Payload is the algorithm-specific state of a snapshot. The set of
// implementations is closed to this package.
type Payload interface {
	Family() Family
	// Kind is the stable name used by the JSON codec.
	Kind() string
	// Clone returns a deep copy sharing no mutable memory with the receiver.
	Clone() Payload
	// Scalars exposes step-local numbers such as running sums.
	Scalars() map[string]float64

	sealed()
}

// Result is the final outcome returned next to a history.
type Result interface {
	Summary() string
}
