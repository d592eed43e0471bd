package variants

import "time"

// Era identifies the print era a set belongs to. Era boundaries drive
// which physical variants a printing can have.
type Era string

const (
	EraWOTC    Era = "wotc"
	EraECard   Era = "ecard"
	EraEX      Era = "ex"
	EraDP      Era = "dp"
	EraHGSS    Era = "hgss"
	EraBW      Era = "bw"
	EraXY      Era = "xy"
	EraSM      Era = "sm"
	EraSWSH    Era = "swsh"
	EraSV      Era = "sv"
	EraUnknown Era = "unknown"
)

// Reverse holos first appeared with Legendary Collection.
var reverseHoloIntroduced = time.Date(2002, time.May, 24, 0, 0, 0, 0, time.UTC)

// Set codes that carried a 1st Edition print run. Nothing after Neo
// Destiny was ever stamped.
var firstEditionSets = map[string]bool{
	"base1": true,
	"base2": true,
	"base3": true,
	"base4": true,
	"base5": true,
	"gym1":  true,
	"gym2":  true,
	"neo1":  true,
	"neo2":  true,
	"neo3":  true,
	"neo4":  true,
}

// Sets whose reverse holos also exist with a stamped pattern. The value
// lists the pattern variants on top of the plain reverse holo.
var patternSets = map[string][]Variant{
	"sv3pt5":   {PokeballPattern},                    // 151
	"sv8pt5":   {PokeballPattern, MasterballPattern}, // Prismatic Evolutions
	"sv10":     {PokeballPattern},                    // Destined Rivals
	"zsv10pt5": {PokeballPattern, MasterballPattern}, // Black Bolt / White Flare
}

// Promo sets print one variant per card, exactly as listed.
var promoSets = map[string]bool{
	"basep": true,
	"dpp":   true,
	"hsp":   true,
	"bwp":   true,
	"xyp":   true,
	"smp":   true,
	"swshp": true,
	"svp":   true,
}

// Era override by set code prefix. Checked before the release-date
// ranges; some early sets released out of order.
var eraByCodePrefix = []struct {
	prefix string
	era    Era
}{
	{"base", EraWOTC},
	{"gym", EraWOTC},
	{"neo", EraWOTC},
	{"si", EraWOTC},
	{"ecard", EraECard},
	{"ex", EraEX},
	{"dp", EraDP},
	{"pl", EraDP},
	{"hgss", EraHGSS},
	{"col", EraHGSS},
	{"bw", EraBW},
	{"dv", EraBW},
	{"xy", EraXY},
	{"g", EraXY},
	{"sm", EraSM},
	{"det", EraSM},
	{"swsh", EraSWSH},
	{"cel", EraSWSH},
	{"pgo", EraSWSH},
	{"zsv", EraSV},
	{"sv", EraSV},
}

// Release-date fallback when the set code is unrecognized.
var eraByDate = []struct {
	from time.Time
	era  Era
}{
	{time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), EraSV},
	{time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC), EraSWSH},
	{time.Date(2017, time.February, 1, 0, 0, 0, 0, time.UTC), EraSM},
	{time.Date(2014, time.February, 1, 0, 0, 0, 0, time.UTC), EraXY},
	{time.Date(2011, time.April, 1, 0, 0, 0, 0, time.UTC), EraBW},
	{time.Date(2010, time.February, 1, 0, 0, 0, 0, time.UTC), EraHGSS},
	{time.Date(2007, time.May, 1, 0, 0, 0, 0, time.UTC), EraDP},
	{time.Date(2003, time.June, 1, 0, 0, 0, 0, time.UTC), EraEX},
	{time.Date(2002, time.September, 1, 0, 0, 0, 0, time.UTC), EraECard},
	{time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC), EraWOTC},
}

// DetectEra resolves the print era for a set, preferring the set code
// table and falling back to the release date.
func DetectEra(setCode string, releaseDate time.Time) Era {
	for _, entry := range eraByCodePrefix {
		if hasPrefix(setCode, entry.prefix) {
			return entry.era
		}
	}
	if releaseDate.IsZero() {
		return EraUnknown
	}
	for _, entry := range eraByDate {
		if !releaseDate.Before(entry.from) {
			return entry.era
		}
	}
	return EraUnknown
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
