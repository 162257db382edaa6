package entity

import "math"

// slotIndex is a position in the slot table. It is a distinct type so table
// positions cannot be mixed up with 1-based handle identifiers.
type slotIndex int32

const noSlot slotIndex = -1

// maxIdentifier caps the slot table size; identifiers are 1-based int32 and
// are never reused across the identifier space.
const maxIdentifier = math.MaxInt32

// slotState is the closed lifecycle state of a slot. Only these five states
// are representable, so a slot can never be live without having been
// reserved, or marked for destruction twice.
type slotState uint8

const (
	slotFree            slotState = iota // unused, linked into the free list
	slotReserved                         // creation requested, awaiting commit
	slotReservedDestroy                  // created and destroyed within the same batch
	slotLive                             // finalized, visible to systems
	slotLiveDestroy                      // live, destruction requested
)

// slotEntry is one fixed storage location in the table. Entries are appended
// once and never removed; only their state cycles.
type slotEntry struct {
	handle   Handle
	state    slotState
	nextFree slotIndex
}

type commandOp uint8

const (
	opCreate commandOp = iota + 1
	opDestroy
)

// command records a requested creation or destruction. It holds a handle
// value, never a reference into the slot table, so table growth cannot
// invalidate it.
type command struct {
	op     commandOp
	handle Handle
}

// System manages the lifetime of entities and gives means for their
// identification. Single-goroutine access only (game loop).
//
// Example usage:
//
//	entities := entity.NewSystem()
//
//	h := entities.Create()
//	// Attach components here. The entity stays pending until the
//	// next ProcessCommands call.
//	entities.ProcessCommands()
//
//	entities.Destroy(h)
//	// The entity stays live until the next ProcessCommands call.
//	entities.ProcessCommands()
type System struct {
	// Events carries the lifecycle notification channels. Finalize is
	// consulted at the commit and can veto a pending creation.
	Events Events

	slots    []slotEntry
	commands []command

	// Free slots form a FIFO chain threaded through nextFree.
	freeHead slotIndex
	freeTail slotIndex

	liveCount   int
	initialized bool
}

// NewSystem returns an initialized entity system. The zero value is a valid
// but uninitialized system whose operations are all no-ops.
func NewSystem() *System {
	s := &System{}
	s.Initialize()
	return s
}

// Initialize restores the system to a fresh, usable state. A previously used
// instance is cleaned up first.
func (s *System) Initialize() {
	s.Cleanup()
	s.slots = make([]slotEntry, 0, 64)
	s.commands = make([]command, 0, 16)
	s.freeHead = noSlot
	s.freeTail = noSlot
	s.initialized = true
}

// Cleanup destroys all remaining entities and returns the instance to the
// uninitialized state, dropping every subscriber.
func (s *System) Cleanup() {
	if !s.initialized {
		return
	}
	s.DestroyAll()
	if len(s.commands) != 0 {
		panic("entity: cleaning up with unprocessed commands left")
	}
	if s.liveCount != 0 {
		panic("entity: cleaning up with live entities left")
	}
	s.Events.Finalize.Clear()
	s.Events.Create.Clear()
	s.Events.Destroy.Clear()
	s.slots = nil
	s.commands = nil
	s.freeHead = noSlot
	s.freeTail = noSlot
	s.initialized = false
}

// Create reserves a slot and schedules the entity's creation. The returned
// handle is valid immediately, so callers can attach component data before
// the entity becomes observable at the next ProcessCommands call. Returns
// the nil handle on an uninitialized system.
func (s *System) Create() Handle {
	if !s.initialized {
		return Nil
	}
	idx := s.retrieveSlot()
	slot := &s.slots[idx]
	slot.state = slotReserved
	s.commands = append(s.commands, command{op: opCreate, handle: slot.handle})
	return slot.handle
}

// Destroy schedules a live or pending entity for destruction at the next
// ProcessCommands call. Invalid, unknown and already-destroying handles are
// silently ignored.
func (s *System) Destroy(h Handle) {
	if !s.initialized || !s.Alive(h) {
		return
	}
	slot := &s.slots[s.indexOf(h)]
	switch slot.state {
	case slotReserved:
		slot.state = slotReservedDestroy
	case slotLive:
		slot.state = slotLiveDestroy
	default:
		panic("entity: destroying a slot that is not valid")
	}
	s.commands = append(s.commands, command{op: opDestroy, handle: slot.handle})
}

// DestroyAll destroys every still-valid entity, processing pending commands
// first. Destructions are applied immediately, not deferred.
func (s *System) DestroyAll() {
	if !s.initialized {
		return
	}
	s.ProcessCommands()
	for i := range s.slots {
		if s.slots[i].state != slotFree {
			s.destroySlot(slotIndex(i))
		}
	}
}

// ProcessCommands is the commit point: it drains the command queue strictly
// in FIFO order, applying one command at a time. Notifications fired while
// draining may enqueue further commands; those are picked up by the same
// drain, so a single call keeps working until the queue is empty.
func (s *System) ProcessCommands() {
	if !s.initialized {
		return
	}
	for i := 0; i < len(s.commands); i++ {
		cmd := s.commands[i]
		switch cmd.op {
		case opCreate:
			s.commitCreate(cmd.handle)
		case opDestroy:
			s.commitDestroy(cmd.handle)
		}
	}
	s.commands = s.commands[:0]
}

// Alive reports whether the handle still denotes a live or pending entity:
// its slot must be reserved or live, must not be marked for destruction, and
// the stored generation must match the handle's. This is the single
// predicate every mutating operation consults before acting on a
// caller-supplied handle.
func (s *System) Alive(h Handle) bool {
	if !s.initialized || h.IsNil() {
		return false
	}
	if h.identifier < 0 || int(h.identifier) > len(s.slots) {
		panic("entity: corrupted handle identifier")
	}
	slot := &s.slots[s.indexOf(h)]
	switch slot.state {
	case slotReserved, slotLive:
		return slot.handle.generation == h.generation
	default:
		return false
	}
}

// Count returns the number of live (committed) entities. It changes only
// during ProcessCommands and DestroyAll.
func (s *System) Count() int { return s.liveCount }

// SlotCount returns the size of the slot table, counting free slots.
func (s *System) SlotCount() int { return len(s.slots) }

// indexOf converts a handle identifier to its slot table position. Pure
// arithmetic; callers must have established validity first.
func (s *System) indexOf(h Handle) slotIndex {
	return slotIndex(h.identifier - 1)
}

// commitCreate applies a queued creation: the finalize vote runs first and a
// veto routes straight into the destroy/free sequence, leaving no
// half-created state behind.
func (s *System) commitCreate(h Handle) {
	idx := s.indexOf(h)
	if s.slots[idx].handle != h {
		return // destroyed and recycled before the command ran
	}
	s.liveCount++
	if !s.Events.Finalize.Publish(Finalizing{Handle: h}) {
		s.destroySlot(idx)
		return
	}
	// Re-resolve the entry: a finalize subscriber may have grown the table.
	slot := &s.slots[idx]
	switch slot.state {
	case slotReserved:
		slot.state = slotLive
	case slotReservedDestroy:
		slot.state = slotLiveDestroy
	default:
		panic("entity: create command for a slot that is not pending creation")
	}
	s.Events.Create.Publish(Created{Handle: h})
}

func (s *System) commitDestroy(h Handle) {
	idx := s.indexOf(h)
	if s.slots[idx].handle != h {
		return // stale: already destroyed and recycled within this batch
	}
	s.destroySlot(idx)
}

// destroySlot runs the destroy/free sequence. The destroy notification fires
// before the slot is freed, so observers can still read the entity's data.
func (s *System) destroySlot(idx slotIndex) {
	s.Events.Destroy.Publish(Destroyed{Handle: s.slots[idx].handle})
	s.freeSlot(idx)
	s.liveCount--
}

// freeSlot marks the slot free, bumps its generation to invalidate any
// outstanding handles, and appends it to the free list tail.
func (s *System) freeSlot(idx slotIndex) {
	slot := &s.slots[idx]
	if slot.state == slotFree {
		panic("entity: freeing a slot that is already free")
	}
	slot.state = slotFree
	slot.handle.generation++
	s.pushFree(idx)
}

// retrieveSlot pops the head of the free list, allocating a fresh slot first
// when the list is empty.
func (s *System) retrieveSlot() slotIndex {
	if s.freeHead == noSlot {
		if s.freeTail != noSlot {
			panic("entity: free list tail set while the list is empty")
		}
		s.allocateSlot()
	}
	idx := s.freeHead
	slot := &s.slots[idx]
	if slot.state != slotFree {
		panic("entity: retrieved slot is not marked as free")
	}
	s.freeHead = slot.nextFree
	if s.freeHead == noSlot {
		s.freeTail = noSlot
	}
	slot.nextFree = noSlot
	return idx
}

// allocateSlot appends a new free slot and links it to the free list tail.
// Exhausting the 32-bit identifier space is an unrecoverable capacity
// violation; there is no compaction or identifier reuse across it.
func (s *System) allocateSlot() {
	if len(s.slots) >= maxIdentifier {
		panic("entity: handle identifier reached its numerical limit")
	}
	s.slots = append(s.slots, slotEntry{
		handle:   Handle{identifier: int32(len(s.slots) + 1)},
		state:    slotFree,
		nextFree: noSlot,
	})
	s.pushFree(slotIndex(len(s.slots) - 1))
}

func (s *System) pushFree(idx slotIndex) {
	if s.slots[idx].nextFree != noSlot {
		panic("entity: freed slot is still linked to a next free slot")
	}
	if s.freeTail == noSlot {
		s.freeHead = idx
	} else {
		if s.slots[s.freeTail].nextFree != noSlot {
			panic("entity: free list tail is linked to a next free slot")
		}
		s.slots[s.freeTail].nextFree = idx
	}
	s.freeTail = idx
}
