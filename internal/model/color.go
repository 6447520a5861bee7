package model

// RGBColor is a player team color. Channels are 0-255; Flags carries
// renderer hints the metaserver never interprets, so unknown bits must
// survive every round trip.
type RGBColor struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Flags uint16
}
