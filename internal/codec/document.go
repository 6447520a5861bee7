package codec

import (
	"net/netip"
	"time"

	"github.com/bagrada/mythmeta/internal/model"
)

// The document form is the full record as a string-keyed map: what
// storage persists and what reporting surfaces serve. Unlike the packed
// buffer it covers every field, the password secret included, so that
// FromDocument(PlayerToDocument(r)) reproduces r exactly.
//
// Integers are emitted as int64 and read back from int64 or float64,
// which keeps the round trip intact across a JSON hop. Timestamps are
// RFC3339 in UTC; zero times and unset IPs serialize as "".

// PlayerToDocument renders a record into its document form.
func PlayerToDocument(r *model.PlayerRecord) map[string]any {
	buddies := make([]any, len(r.Buddies))
	for i, b := range r.Buddies {
		buddies[i] = map[string]any{
			"player_id": int64(b.PlayerID),
			"active":    b.Active,
		}
	}

	scores := make([]any, len(r.RankedScoresByGameType))
	for i, d := range r.RankedScoresByGameType {
		scores[i] = scoreToDoc(d)
	}

	opponents := make([]any, len(r.LastOpponents))
	for i, id := range r.LastOpponents {
		opponents[i] = int64(id)
	}

	return map[string]any{
		"player_id":             int64(r.ID),
		"login":                 r.Login(),
		"password":              r.PasswordSecret(),
		"flags":                 int64(r.Flags),
		"last_login_ip":         addrToDoc(r.LastLoginIP),
		"last_login_time":       timeToDoc(r.LastLoginTime),
		"last_game_time":        timeToDoc(r.LastGameTime),
		"last_ranked_game_time": timeToDoc(r.LastRankedGameTime),
		"room_id":               int64(r.RoomID),
		"order_index":           int64(r.OrderIndex),
		"icon_index":            int64(r.IconIndex),
		"icon_collection_name":  r.IconCollectionName(),
		"primary_color":         colorToDoc(r.PrimaryColor),
		"secondary_color":       colorToDoc(r.SecondaryColor),
		"name":                  r.Name(),
		"team_name":             r.TeamName(),
		"description":           r.Description(),
		"ban_duration":          int64(r.BanDuration),
		"banned_time":           timeToDoc(r.BannedTime),
		"times_banned":          int64(r.TimesBanned),
		"country_code":          int64(r.CountryCode),
		"buddies":               buddies,
		"unranked_score":        scoreToDoc(r.UnrankedScore),
		"ranked_score":          scoreToDoc(r.RankedScore),
		"ranked_scores_by_game_type": scores,
		"last_opponent_index":        int64(r.LastOpponentIndex),
		"last_opponents":             opponents,
		"aux_data": map[string]any{
			"game_type_flags": int64(r.Aux.GameTypeFlags),
			"build_version":   int64(r.Aux.BuildVersion),
		},
	}
}

// PlayerFromDocument rebuilds a record from its document form. Bounded
// text goes through the record setters, so an over-long value in a
// document is clamped, not rejected.
func PlayerFromDocument(doc map[string]any) (*model.PlayerRecord, error) {
	d := docReader{doc: doc}

	r := model.NewPlayerRecord(model.PlayerID(d.int64("player_id")))
	r.SetLogin(d.str("login"))
	r.SetPasswordSecret(d.str("password"))
	r.Flags = model.PlayerFlags(d.int64("flags"))
	r.LastLoginIP = d.addr("last_login_ip")
	r.LastLoginTime = d.time("last_login_time")
	r.LastGameTime = d.time("last_game_time")
	r.LastRankedGameTime = d.time("last_ranked_game_time")
	r.RoomID = int16(d.int64("room_id"))
	r.OrderIndex = int16(d.int64("order_index"))
	r.IconIndex = int16(d.int64("icon_index"))
	r.SetIconCollectionName(d.str("icon_collection_name"))
	r.PrimaryColor = d.color("primary_color")
	r.SecondaryColor = d.color("secondary_color")
	r.SetName(d.str("name"))
	r.SetTeamName(d.str("team_name"))
	r.SetDescription(d.str("description"))
	r.BanDuration = int32(d.int64("ban_duration"))
	r.BannedTime = d.time("banned_time")
	r.TimesBanned = int32(d.int64("times_banned"))
	r.CountryCode = int16(d.int64("country_code"))
	r.LastOpponentIndex = int(d.int64("last_opponent_index"))

	for i, entry := range d.list("buddies", len(r.Buddies)) {
		e := docReader{doc: d.asMap("buddies", entry), err: d.err}
		r.Buddies[i] = model.BuddyEntry{
			PlayerID: model.PlayerID(e.int64("player_id")),
			Active:   e.bool("active"),
		}
		d.err = e.err
	}

	r.UnrankedScore = d.score("unranked_score")
	r.RankedScore = d.score("ranked_score")
	for i, entry := range d.list("ranked_scores_by_game_type", len(r.RankedScoresByGameType)) {
		e := docReader{doc: d.asMap("ranked_scores_by_game_type", entry), err: d.err}
		r.RankedScoresByGameType[i] = scoreFromReader(&e)
		d.err = e.err
	}

	for i, entry := range d.list("last_opponents", len(r.LastOpponents)) {
		r.LastOpponents[i] = model.PlayerID(d.asInt64("last_opponents", entry))
	}

	aux := docReader{doc: d.asMap("aux_data", d.doc["aux_data"]), err: d.err}
	r.Aux = model.AdditionalPlayerData{
		GameTypeFlags: model.GameTypeFlags(aux.int64("game_type_flags")),
		BuildVersion:  int32(aux.int64("build_version")),
	}
	d.err = aux.err

	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}

// OrderToDocument renders an order record into its document form.
func OrderToDocument(o *model.OrderRecord) map[string]any {
	members := make([]any, len(o.Members))
	for i, m := range o.Members {
		members[i] = map[string]any{
			"player_id": int64(m.PlayerID),
			"online":    m.Online,
		}
	}

	scores := make([]any, len(o.RankedScoresByGameType))
	for i, d := range o.RankedScoresByGameType {
		scores[i] = scoreToDoc(d)
	}

	return map[string]any{
		"order_id":      int64(o.ID),
		"founding_date": timeToDoc(o.FoundingDate),
		"initial_date_below_three_members": timeToDoc(o.InitialDateBelowThreeMembers),
		"name":                 o.Name(),
		"maintenance_password": o.MaintenancePassword(),
		"member_password":      o.MemberPassword(),
		"url":                  o.URL(),
		"contact_email":        o.ContactEmail(),
		"motto":                o.Motto(),
		"members":              members,
		"unranked_score":       scoreToDoc(o.UnrankedScore),
		"ranked_score":         scoreToDoc(o.RankedScore),
		"ranked_scores_by_game_type": scores,
	}
}

// OrderFromDocument rebuilds an order record from its document form.
func OrderFromDocument(doc map[string]any) (*model.OrderRecord, error) {
	d := docReader{doc: doc}

	o := model.NewOrderRecord(model.OrderID(d.int64("order_id")), d.time("founding_date"))
	o.InitialDateBelowThreeMembers = d.time("initial_date_below_three_members")
	o.SetName(d.str("name"))
	o.SetMaintenancePassword(d.str("maintenance_password"))
	o.SetMemberPassword(d.str("member_password"))
	o.SetURL(d.str("url"))
	o.SetContactEmail(d.str("contact_email"))
	o.SetMotto(d.str("motto"))

	for i, entry := range d.list("members", len(o.Members)) {
		e := docReader{doc: d.asMap("members", entry), err: d.err}
		o.Members[i] = model.OrderMember{
			PlayerID: model.PlayerID(e.int64("player_id")),
			Online:   e.bool("online"),
		}
		d.err = e.err
	}

	o.UnrankedScore = d.score("unranked_score")
	o.RankedScore = d.score("ranked_score")
	for i, entry := range d.list("ranked_scores_by_game_type", len(o.RankedScoresByGameType)) {
		e := docReader{doc: d.asMap("ranked_scores_by_game_type", entry), err: d.err}
		o.RankedScoresByGameType[i] = scoreFromReader(&e)
		d.err = e.err
	}

	if d.err != nil {
		return nil, d.err
	}
	return o, nil
}

func scoreToDoc(d model.ScoreDatum) map[string]any {
	return map[string]any{
		"games_played":     int64(d.GamesPlayed),
		"wins":             int64(d.Wins),
		"losses":           int64(d.Losses),
		"ties":             int64(d.Ties),
		"damage_inflicted": int64(d.DamageInflicted),
		"damage_received":  int64(d.DamageReceived),
		"disconnects":      int64(d.Disconnects),
		"points":           int64(d.Points),
		"rank":             int64(d.Rank),
		"highest_points":   int64(d.HighestPoints),
		"highest_rank":     int64(d.HighestRank),
		"numerical_rank":   int64(d.NumericalRank),
	}
}

func scoreFromReader(d *docReader) model.ScoreDatum {
	return model.ScoreDatum{
		GamesPlayed:     uint32(d.int64("games_played")),
		Wins:            uint32(d.int64("wins")),
		Losses:          uint32(d.int64("losses")),
		Ties:            uint32(d.int64("ties")),
		DamageInflicted: uint32(d.int64("damage_inflicted")),
		DamageReceived:  uint32(d.int64("damage_received")),
		Disconnects:     uint32(d.int64("disconnects")),
		Points:          int32(d.int64("points")),
		Rank:            int16(d.int64("rank")),
		HighestPoints:   int32(d.int64("highest_points")),
		HighestRank:     int16(d.int64("highest_rank")),
		NumericalRank:   int16(d.int64("numerical_rank")),
	}
}

func colorToDoc(c model.RGBColor) map[string]any {
	return map[string]any{
		"red":   int64(c.Red),
		"green": int64(c.Green),
		"blue":  int64(c.Blue),
		"flags": int64(c.Flags),
	}
}

func timeToDoc(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func addrToDoc(a netip.Addr) string {
	if !a.IsValid() {
		return ""
	}
	return a.String()
}

// docReader pulls typed values out of a document, remembering the first
// failure so call sites stay flat.
type docReader struct {
	doc map[string]any
	err error
}

func (d *docReader) fail(field, format string, args ...any) {
	if d.err == nil {
		d.err = formatErrorf(field, format, args...)
	}
}

func (d *docReader) int64(key string) int64 {
	v, ok := d.doc[key]
	if !ok {
		d.fail(key, "missing field")
		return 0
	}
	return d.asInt64(key, v)
}

func (d *docReader) asInt64(key string, v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	default:
		d.fail(key, "expected number, got %T", v)
		return 0
	}
}

func (d *docReader) str(key string) string {
	v, ok := d.doc[key]
	if !ok {
		d.fail(key, "missing field")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(key, "expected string, got %T", v)
		return ""
	}
	return s
}

func (d *docReader) bool(key string) bool {
	v, ok := d.doc[key]
	if !ok {
		d.fail(key, "missing field")
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(key, "expected bool, got %T", v)
		return false
	}
	return b
}

func (d *docReader) time(key string) time.Time {
	s := d.str(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		d.fail(key, "bad timestamp %q", s)
		return time.Time{}
	}
	return t
}

func (d *docReader) addr(key string) netip.Addr {
	s := d.str(key)
	if s == "" {
		return netip.Addr{}
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		d.fail(key, "bad address %q", s)
		return netip.Addr{}
	}
	return a
}

func (d *docReader) color(key string) model.RGBColor {
	e := docReader{doc: d.asMap(key, d.doc[key]), err: d.err}
	c := model.RGBColor{
		Red:   uint8(e.int64("red")),
		Green: uint8(e.int64("green")),
		Blue:  uint8(e.int64("blue")),
		Flags: uint16(e.int64("flags")),
	}
	d.err = e.err
	return c
}

func (d *docReader) score(key string) model.ScoreDatum {
	e := docReader{doc: d.asMap(key, d.doc[key]), err: d.err}
	s := scoreFromReader(&e)
	d.err = e.err
	return s
}

func (d *docReader) asMap(key string, v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(key, "expected object, got %T", v)
		return map[string]any{}
	}
	return m
}

// list returns the entries under key, at most capacity of them. A
// longer list is a format error; a shorter one fills a prefix, which
// keeps old documents readable.
func (d *docReader) list(key string, capacity int) []any {
	v, ok := d.doc[key]
	if !ok {
		d.fail(key, "missing field")
		return nil
	}
	entries, ok := v.([]any)
	if !ok {
		d.fail(key, "expected array, got %T", v)
		return nil
	}
	if len(entries) > capacity {
		d.fail(key, "%d entries exceed capacity %d", len(entries), capacity)
		return nil
	}
	return entries
}
