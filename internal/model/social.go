package model

// OverflowPolicy decides what an insert does when a fixed-capacity list
// is already full.
type OverflowPolicy int

const (
	// RejectWhenFull fails the insert with a capacity error.
	RejectWhenFull OverflowPolicy = iota
	// EvictOldest drops the oldest entry to make room.
	EvictOldest
)

// BuddyEntry is one slot in a player's buddy list. A zero PlayerID
// marks an empty slot.
type BuddyEntry struct {
	PlayerID PlayerID
	Active   bool
}

// BuddyList is the fixed buddy array. Entries stay packed toward the
// front in insertion order, so index 0 is always the oldest.
type BuddyList [MaxBuddies]BuddyEntry

// Insert adds an entry, replacing in place if the player is already
// listed. A full list defers to the overflow policy.
func (l *BuddyList) Insert(entry BuddyEntry, policy OverflowPolicy) error {
	for i := range l {
		if l[i].PlayerID == entry.PlayerID && entry.PlayerID != 0 {
			l[i] = entry
			return nil
		}
	}
	for i := range l {
		if l[i].PlayerID == 0 {
			l[i] = entry
			return nil
		}
	}
	if policy == EvictOldest {
		copy(l[:], l[1:])
		l[len(l)-1] = entry
		return nil
	}
	return ErrBuddyListFull
}

// Remove clears the entry for id and compacts the tail. Returns false
// if the player was not listed.
func (l *BuddyList) Remove(id PlayerID) bool {
	for i := range l {
		if l[i].PlayerID == id && id != 0 {
			copy(l[i:], l[i+1:])
			l[len(l)-1] = BuddyEntry{}
			return true
		}
	}
	return false
}

// Contains reports whether id occupies a slot.
func (l *BuddyList) Contains(id PlayerID) bool {
	for i := range l {
		if l[i].PlayerID == id && id != 0 {
			return true
		}
	}
	return false
}

// Count returns the number of occupied slots.
func (l *BuddyList) Count() int {
	n := 0
	for i := range l {
		if l[i].PlayerID != 0 {
			n++
		}
	}
	return n
}

// OrderMember is one slot in an order roster. A zero PlayerID marks an
// empty slot.
type OrderMember struct {
	PlayerID PlayerID
	Online   bool
}

// OrderMemberList is the roster exchanged with game clients.
type OrderMemberList [MaxOrderMembers]OrderMember

// OrderMemberListExt is the wider roster the room server exchanges.
type OrderMemberListExt [MaxOrderMembersExt]OrderMember

func (l *OrderMemberList) Insert(m OrderMember, policy OverflowPolicy) error {
	return insertMember(l[:], m, policy)
}

func (l *OrderMemberList) Remove(id PlayerID) bool   { return removeMember(l[:], id) }
func (l *OrderMemberList) Contains(id PlayerID) bool { return containsMember(l[:], id) }
func (l *OrderMemberList) Count() int                { return countMembers(l[:]) }

func (l *OrderMemberListExt) Insert(m OrderMember, policy OverflowPolicy) error {
	return insertMember(l[:], m, policy)
}

func (l *OrderMemberListExt) Remove(id PlayerID) bool   { return removeMember(l[:], id) }
func (l *OrderMemberListExt) Contains(id PlayerID) bool { return containsMember(l[:], id) }
func (l *OrderMemberListExt) Count() int                { return countMembers(l[:]) }

// The two roster widths share one implementation over the backing
// slice; the array types above fix the capacities.

func insertMember(slots []OrderMember, m OrderMember, policy OverflowPolicy) error {
	for i := range slots {
		if slots[i].PlayerID == m.PlayerID && m.PlayerID != 0 {
			slots[i] = m
			return nil
		}
	}
	for i := range slots {
		if slots[i].PlayerID == 0 {
			slots[i] = m
			return nil
		}
	}
	if policy == EvictOldest {
		copy(slots, slots[1:])
		slots[len(slots)-1] = m
		return nil
	}
	return ErrOrderRosterFull
}

func removeMember(slots []OrderMember, id PlayerID) bool {
	for i := range slots {
		if slots[i].PlayerID == id && id != 0 {
			copy(slots[i:], slots[i+1:])
			slots[len(slots)-1] = OrderMember{}
			return true
		}
	}
	return false
}

func containsMember(slots []OrderMember, id PlayerID) bool {
	for i := range slots {
		if slots[i].PlayerID == id && id != 0 {
			return true
		}
	}
	return false
}

func countMembers(slots []OrderMember) int {
	n := 0
	for i := range slots {
		if slots[i].PlayerID != 0 {
			n++
		}
	}
	return n
}
