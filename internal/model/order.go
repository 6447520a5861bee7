package model

import "time"

// OrderRecord is the durable record for an order (clan). Bounded text
// follows the same accessor-enforced truncation policy as PlayerRecord.
type OrderRecord struct {
	ID OrderID

	FoundingDate time.Time
	// InitialDateBelowThreeMembers starts the grace clock for orders
	// that shrink below the minimum sustaining size.
	InitialDateBelowThreeMembers time.Time

	name                string
	maintenancePassword string
	memberPassword      string
	url                 string
	contactEmail        string
	motto               string

	Members OrderMemberList

	UnrankedScore          ScoreDatum
	RankedScore            ScoreDatum
	RankedScoresByGameType [MaxGameTypes]ScoreDatum
}

// NewOrderRecord returns an order founded at the given time.
func NewOrderRecord(id OrderID, founded time.Time) *OrderRecord {
	return &OrderRecord{
		ID:           id,
		FoundingDate: founded,
	}
}

func (o *OrderRecord) Name() string     { return o.name }
func (o *OrderRecord) SetName(s string) { o.name = truncate(s, MaxOrderNameLength) }

func (o *OrderRecord) MaintenancePassword() string { return o.maintenancePassword }
func (o *OrderRecord) SetMaintenancePassword(s string) {
	o.maintenancePassword = truncate(s, MaxOrderPasswordLength)
}

func (o *OrderRecord) MemberPassword() string { return o.memberPassword }
func (o *OrderRecord) SetMemberPassword(s string) {
	o.memberPassword = truncate(s, MaxOrderPasswordLength)
}

func (o *OrderRecord) URL() string     { return o.url }
func (o *OrderRecord) SetURL(s string) { o.url = truncate(s, MaxOrderURLLength) }

func (o *OrderRecord) ContactEmail() string { return o.contactEmail }
func (o *OrderRecord) SetContactEmail(s string) {
	o.contactEmail = truncate(s, MaxOrderEmailLength)
}

func (o *OrderRecord) Motto() string     { return o.motto }
func (o *OrderRecord) SetMotto(s string) { o.motto = truncate(s, MaxOrderMottoLength) }

// Clone returns an independent snapshot of the record.
func (o *OrderRecord) Clone() OrderRecord { return *o }
