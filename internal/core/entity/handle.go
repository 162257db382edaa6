package entity

// Handle references a unique entity in the world. It consists of a 1-based
// identifier and a generation counter. The generation is increased every
// time the identifier's slot is reused, so a handle to a destroyed entity
// never matches the slot's new occupant.
type Handle struct {
	identifier int32
	generation int32
}

// Nil is the universal invalid handle (identifier 0).
var Nil = Handle{}

func (h Handle) Identifier() int32 { return h.identifier }
func (h Handle) Generation() int32 { return h.generation }
func (h Handle) IsNil() bool       { return h.identifier == 0 }

// Less orders handles by identifier only, for deterministic iteration.
// It says nothing about validity.
func (h Handle) Less(other Handle) bool { return h.identifier < other.identifier }
