package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/bagrada/mythmeta/internal/model"
)

// Packed player buffer layout. Everything is little-endian and the
// total length is always exactly model.PackedPlayerDataSize; peers
// treat these offsets as a frozen contract.
//
//	offset  size  field
//	     0     2  coat-of-arms bitmap index (int16)
//	     2     2  caste bitmap index (int16)
//	     4     2  status (PlayerStatus, domain checked)
//	     6     8  primary color (red, green, blue, flags words)
//	    14     8  secondary color
//	    22     2  order index (int16)
//	    24     2  client version (int16)
//	    26    32  name, NUL terminated
//	    58    32  team name, NUL terminated
//	    90    38  reserved, zero on encode
const (
	offCoatOfArms     = 0
	offCaste          = 2
	offStatus         = 4
	offPrimaryColor   = 6
	offSecondaryColor = 14
	offOrderIndex     = 22
	offVersion        = 24
	offName           = 26
	offTeamName       = 58

	// Name fields carry a terminator, hence one byte over the max.
	nameFieldLen = model.MaxPlayerNameLength + 1

	colorLen = 8
)

// PackedPlayerData is the legacy-visible subset of a player record:
// what lobby clients see of each other. The full record never crosses
// the legacy wire.
type PackedPlayerData struct {
	CoatOfArmsIndex int16
	CasteIndex      int16
	Status          model.PlayerStatus
	PrimaryColor    model.RGBColor
	SecondaryColor  model.RGBColor
	OrderIndex      int16
	Version         int16
	Name            string
	TeamName        string
}

// EncodePackedPlayer renders the subset into the fixed wire buffer.
// Over-long names are clamped by the record truncation policy; color
// channels occupy the low byte of their word.
func EncodePackedPlayer(d PackedPlayerData) [model.PackedPlayerDataSize]byte {
	var buf [model.PackedPlayerDataSize]byte

	binary.LittleEndian.PutUint16(buf[offCoatOfArms:], uint16(d.CoatOfArmsIndex))
	binary.LittleEndian.PutUint16(buf[offCaste:], uint16(d.CasteIndex))
	binary.LittleEndian.PutUint16(buf[offStatus:], uint16(d.Status))
	putColor(buf[offPrimaryColor:], d.PrimaryColor)
	putColor(buf[offSecondaryColor:], d.SecondaryColor)
	binary.LittleEndian.PutUint16(buf[offOrderIndex:], uint16(d.OrderIndex))
	binary.LittleEndian.PutUint16(buf[offVersion:], uint16(d.Version))
	putCString(buf[offName:offName+nameFieldLen], d.Name)
	putCString(buf[offTeamName:offTeamName+nameFieldLen], d.TeamName)

	return buf
}

// DecodePackedPlayer parses a packed buffer. The buffer must be exactly
// model.PackedPlayerDataSize bytes and the status must use only defined
// bits; anything else is a FormatError. The result is built fresh, so a
// failed decode leaves no partial state behind.
func DecodePackedPlayer(buf []byte) (PackedPlayerData, error) {
	if len(buf) != model.PackedPlayerDataSize {
		return PackedPlayerData{}, formatErrorf("",
			"incorrect length %d, want %d", len(buf), model.PackedPlayerDataSize)
	}

	status := model.PlayerStatus(binary.LittleEndian.Uint16(buf[offStatus:]))
	if !status.Valid() {
		return PackedPlayerData{}, formatErrorf("status",
			"value %#x outside defined domain", uint16(status))
	}

	d := PackedPlayerData{
		CoatOfArmsIndex: int16(binary.LittleEndian.Uint16(buf[offCoatOfArms:])),
		CasteIndex:      int16(binary.LittleEndian.Uint16(buf[offCaste:])),
		Status:          status,
		PrimaryColor:    getColor(buf[offPrimaryColor:]),
		SecondaryColor:  getColor(buf[offSecondaryColor:]),
		OrderIndex:      int16(binary.LittleEndian.Uint16(buf[offOrderIndex:])),
		Version:         int16(binary.LittleEndian.Uint16(buf[offVersion:])),
		Name:            getCString(buf[offName : offName+nameFieldLen]),
		TeamName:        getCString(buf[offTeamName : offTeamName+nameFieldLen]),
	}
	return d, nil
}

// PackedFromRecord builds the wire subset from a record and its live
// lobby state. The caste index comes from outside because ranking is
// not decided here.
func PackedFromRecord(r *model.PlayerRecord, status model.PlayerStatus, casteIndex int16, version int16) PackedPlayerData {
	return PackedPlayerData{
		CoatOfArmsIndex: r.IconIndex,
		CasteIndex:      casteIndex,
		Status:          status,
		PrimaryColor:    r.PrimaryColor,
		SecondaryColor:  r.SecondaryColor,
		OrderIndex:      r.OrderIndex,
		Version:         version,
		Name:            r.Name(),
		TeamName:        r.TeamName(),
	}
}

// putColor writes a color as four little-endian words. The channels
// live in the low byte; flags pass through whole so unknown bits
// survive the trip.
func putColor(b []byte, c model.RGBColor) {
	binary.LittleEndian.PutUint16(b[0:], uint16(c.Red))
	binary.LittleEndian.PutUint16(b[2:], uint16(c.Green))
	binary.LittleEndian.PutUint16(b[4:], uint16(c.Blue))
	binary.LittleEndian.PutUint16(b[6:], c.Flags)
}

func getColor(b []byte) model.RGBColor {
	return model.RGBColor{
		Red:   uint8(binary.LittleEndian.Uint16(b[0:])),
		Green: uint8(binary.LittleEndian.Uint16(b[2:])),
		Blue:  uint8(binary.LittleEndian.Uint16(b[4:])),
		Flags: binary.LittleEndian.Uint16(b[6:]),
	}
}

// putCString writes s NUL-terminated into the field, clamping to leave
// room for the terminator.
func putCString(field []byte, s string) {
	max := len(field) - 1
	if len(s) > max {
		s = s[:max]
	}
	copy(field, s)
	for i := len(s); i < len(field); i++ {
		field[i] = 0
	}
}

// getCString reads up to the first NUL. The final byte is terminator
// space, so the result never exceeds len(field)-1 bytes even when a
// foreign buffer forgot to terminate.
func getCString(field []byte) string {
	s := field[:len(field)-1]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		return string(s[:i])
	}
	return string(s)
}
