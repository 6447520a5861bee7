package codec

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagrada/mythmeta/internal/model"
)

func samplePacked() PackedPlayerData {
	return PackedPlayerData{
		CoatOfArmsIndex: 12,
		CasteIndex:      7,
		Status:          model.StatusActive,
		PrimaryColor:    model.RGBColor{Red: 200, Green: 30, Blue: 75, Flags: 1},
		SecondaryColor:  model.RGBColor{Red: 10, Green: 128, Blue: 255},
		OrderIndex:      3,
		Version:         2150,
		Name:            "Soulblighter",
		TeamName:        "The Fallen",
	}
}

func TestPackedRoundTrip(t *testing.T) {
	in := samplePacked()

	buf := EncodePackedPlayer(in)
	require.Len(t, buf, model.PackedPlayerDataSize)

	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPackedLayoutIsPinned(t *testing.T) {
	buf := EncodePackedPlayer(samplePacked())

	// Spot-check the frozen offsets so a refactor can't silently move
	// fields around.
	assert.Equal(t, uint16(12), binary.LittleEndian.Uint16(buf[0:]))
	assert.Equal(t, uint16(7), binary.LittleEndian.Uint16(buf[2:]))
	assert.Equal(t, uint16(model.StatusActive), binary.LittleEndian.Uint16(buf[4:]))
	assert.Equal(t, uint16(200), binary.LittleEndian.Uint16(buf[6:]), "primary red word")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(buf[12:]), "primary flags word")
	assert.Equal(t, uint16(255), binary.LittleEndian.Uint16(buf[18:]), "secondary blue word")
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(buf[22:]))
	assert.Equal(t, uint16(2150), binary.LittleEndian.Uint16(buf[24:]))
	assert.Equal(t, byte('S'), buf[26])
	assert.Equal(t, byte(0), buf[26+len("Soulblighter")], "name is NUL terminated")
	assert.Equal(t, byte('T'), buf[58])

	for i := 90; i < model.PackedPlayerDataSize; i++ {
		require.Equal(t, byte(0), buf[i], "reserved tail byte %d", i)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	good := EncodePackedPlayer(samplePacked())

	for _, n := range []int{0, 1, 127, 129, 256} {
		buf := make([]byte, n)
		copy(buf, good[:])

		_, err := DecodePackedPlayer(buf)
		require.Error(t, err, "length %d", n)

		var fe *FormatError
		require.ErrorAs(t, err, &fe, "length %d", n)
		assert.Contains(t, fe.Reason, "incorrect length")
	}
}

func TestDecodeRejectsUnknownStatusBits(t *testing.T) {
	buf := EncodePackedPlayer(samplePacked())
	binary.LittleEndian.PutUint16(buf[offStatus:], 0x80)

	_, err := DecodePackedPlayer(buf[:])
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "status", fe.Field)
}

func TestDecodeIgnoresReservedTail(t *testing.T) {
	buf := EncodePackedPlayer(samplePacked())
	for i := 90; i < model.PackedPlayerDataSize; i++ {
		buf[i] = 0xAB
	}

	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err, "a chatty peer's tail bytes are not an error")
	assert.Equal(t, samplePacked(), out)
}

func TestEncodeClampsOverlongNames(t *testing.T) {
	in := samplePacked()
	in.Name = strings.Repeat("n", 50)
	in.TeamName = strings.Repeat("t", 50)

	buf := EncodePackedPlayer(in)
	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("n", model.MaxPlayerNameLength), out.Name)
	assert.Equal(t, strings.Repeat("t", model.MaxPlayerNameLength), out.TeamName)
}

func TestDecodeUnterminatedNameClamps(t *testing.T) {
	buf := EncodePackedPlayer(samplePacked())
	for i := offName; i < offName+nameFieldLen; i++ {
		buf[i] = 'x'
	}

	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", model.MaxPlayerNameLength), out.Name)
}

func TestColorFlagsPassThroughOpaque(t *testing.T) {
	in := samplePacked()
	in.PrimaryColor.Flags = 0xBEEF

	buf := EncodePackedPlayer(in)
	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), out.PrimaryColor.Flags)
}

func TestStatusCombinationsDecode(t *testing.T) {
	in := samplePacked()
	in.Status = model.StatusActive | model.StatusOffline

	buf := EncodePackedPlayer(in)
	out, err := DecodePackedPlayer(buf[:])
	require.NoError(t, err)
	assert.Equal(t, in.Status, out.Status)
}

func TestPackedFromRecord(t *testing.T) {
	r := model.NewPlayerRecord(9)
	r.SetName("Baron")
	r.SetTeamName("Ghol Riders")
	r.IconIndex = 4
	r.OrderIndex = 2
	r.PrimaryColor = model.RGBColor{Red: 1, Green: 2, Blue: 3}

	d := PackedFromRecord(r, model.StatusActive, 11, 2150)

	assert.Equal(t, int16(4), d.CoatOfArmsIndex)
	assert.Equal(t, int16(11), d.CasteIndex)
	assert.Equal(t, "Baron", d.Name)
	assert.Equal(t, "Ghol Riders", d.TeamName)
	assert.Equal(t, int16(2), d.OrderIndex)
	assert.Equal(t, r.PrimaryColor, d.PrimaryColor)
}
