package calls

import (
	"fmt"
	"strings"
)

// Slot describes one position in a fixed-length call sequence: either empty, meaning no transaction is scheduled at
// that position, or occupied by a call. A tagged variant is used instead of a bare nullable reference so that the
// gap-filling invariant stays visible in the type.
type Slot struct {
	call *Call
}

// EmptySlot returns a slot with no scheduled call.
func EmptySlot() Slot {
	return Slot{}
}

// OccupiedSlot returns a slot scheduling the given call.
func OccupiedSlot(call *Call) Slot {
	return Slot{call: call}
}

// Empty indicates whether no call is scheduled at this slot.
func (s Slot) Empty() bool {
	return s.call == nil
}

// Call returns the scheduled call, or nil if the slot is empty.
func (s Slot) Call() *Call {
	return s.call
}

// CallSequence describes a fixed-length sequence of call slots. The occupied run is contiguous from index 0, except
// transiently while a mutation is being applied.
type CallSequence struct {
	slots []Slot
}

// NewCallSequence creates a call sequence of the given fixed length with every slot empty.
func NewCallSequence(length int) *CallSequence {
	return &CallSequence{
		slots: make([]Slot, length),
	}
}

// Length returns the fixed length of the sequence, counting empty slots.
func (s *CallSequence) Length() int {
	return len(s.slots)
}

// At returns the slot at the given index.
func (s *CallSequence) At(index int) Slot {
	return s.slots[index]
}

// Set replaces the slot at the given index.
func (s *CallSequence) Set(index int, slot Slot) {
	s.slots[index] = slot
}

// Calls returns every scheduled call in sequence order, skipping empty slots.
func (s *CallSequence) Calls() []*Call {
	calls := make([]*Call, 0, len(s.slots))
	for _, slot := range s.slots {
		if !slot.Empty() {
			calls = append(calls, slot.Call())
		}
	}
	return calls
}

// OccupiedCount returns the number of occupied slots.
func (s *CallSequence) OccupiedCount() int {
	return len(s.Calls())
}

// LastSlotEmpty indicates whether the final slot of the sequence is empty. The mutation engine fills gaps before
// applying any other edit.
func (s *CallSequence) LastSlotEmpty() bool {
	return s.slots[len(s.slots)-1].Empty()
}

// Clone creates a structural copy of the sequence. The original is never aliased by the copy.
func (s *CallSequence) Clone() *CallSequence {
	cloned := NewCallSequence(len(s.slots))
	for i, slot := range s.slots {
		if !slot.Empty() {
			cloned.slots[i] = OccupiedSlot(slot.Call().Clone())
		}
	}
	return cloned
}

// String returns a human-readable representation of the sequence, one line per occupied slot.
func (s *CallSequence) String() string {
	var builder strings.Builder
	builder.WriteString("call sequence:\n")
	for i, slot := range s.slots {
		if slot.Empty() {
			continue
		}
		call := slot.Call()
		builder.WriteString(fmt.Sprintf("[%d] func: %s, sender: %s, value: %s, payload: %x\n",
			i, call.FuncHash, call.Sender.Hex(), call.Value.String(), call.Payload))
	}
	return builder.String()
}
