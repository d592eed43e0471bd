package variants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDetectEra(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		release time.Time
		want    Era
	}{
		{"base set by code", "base1", date(1999, time.January, 9), EraWOTC},
		{"neo by code", "neo4", date(2002, time.February, 28), EraWOTC},
		{"sv by code", "sv3pt5", date(2023, time.September, 22), EraSV},
		{"swsh promo", "swshp", date(2020, time.February, 7), EraSWSH},
		{"unknown code falls back to date", "xx99", date(2015, time.June, 1), EraXY},
		{"unknown code, dp window", "xx99", date(2008, time.March, 1), EraDP},
		{"no code, no date", "xx99", time.Time{}, EraUnknown},
		{"pre-1999 date", "xx99", date(1998, time.June, 1), EraUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectEra(tc.code, tc.release))
		})
	}
}

func TestInfer_WotcEra(t *testing.T) {
	t.Run("base set rare holo", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "base1",
			ReleaseDate: date(1999, time.January, 9),
			Rarity:      "Rare Holo",
			Supertype:   "Pokemon",
		})
		// Holo rarity: foil print only, plus the 1st edition stamp.
		assert.Equal(t, []Variant{Holo, FirstEdition}, got)
	})

	t.Run("base set common has no reverse holo", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "base1",
			ReleaseDate: date(1999, time.January, 9),
			Rarity:      "Common",
			Supertype:   "Pokemon",
		})
		assert.Equal(t, []Variant{Normal, FirstEdition}, got)
	})

	t.Run("legendary collection has reverse holo", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "base6",
			ReleaseDate: date(2002, time.May, 24),
			Rarity:      "Uncommon",
			Supertype:   "Pokemon",
		})
		assert.Contains(t, got, ReverseHolo)
		// Legendary Collection never had a 1st edition run.
		assert.NotContains(t, got, FirstEdition)
	})
}

func TestInfer_ModernEras(t *testing.T) {
	t.Run("sv common gets normal and reverse", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv1",
			ReleaseDate: date(2023, time.March, 31),
			Rarity:      "Common",
			Supertype:   "Pokemon",
		})
		assert.Equal(t, []Variant{Normal, ReverseHolo}, got)
	})

	t.Run("151 adds pokeball pattern", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv3pt5",
			ReleaseDate: date(2023, time.September, 22),
			Rarity:      "Common",
			Supertype:   "Pokemon",
		})
		assert.Equal(t, []Variant{Normal, ReverseHolo, PokeballPattern}, got)
	})

	t.Run("prismatic evolutions adds both patterns", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv8pt5",
			ReleaseDate: date(2025, time.January, 17),
			Rarity:      "Uncommon",
			Supertype:   "Pokemon",
		})
		assert.Contains(t, got, PokeballPattern)
		assert.Contains(t, got, MasterballPattern)
	})

	t.Run("ultra rarity is foil only", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "swsh1",
			ReleaseDate: date(2020, time.February, 7),
			Rarity:      "Rare Ultra",
			Supertype:   "Pokemon",
		})
		assert.Equal(t, []Variant{Holo}, got)
	})

	t.Run("basic energy is normal only", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv1",
			ReleaseDate: date(2023, time.March, 31),
			Rarity:      "Common",
			Supertype:   "Energy",
		})
		assert.Equal(t, []Variant{Normal}, got)
	})

	t.Run("promo prints a single variant", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "svp",
			ReleaseDate: date(2023, time.March, 31),
			Rarity:      "Promo",
			Supertype:   "Pokemon",
		})
		assert.Equal(t, []Variant{Normal}, got)
	})
}

func TestInfer_PriceKeyOverrides(t *testing.T) {
	t.Run("holofoil key forces holo on a plain rare", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv1",
			ReleaseDate: date(2023, time.March, 31),
			Rarity:      "Rare",
			Supertype:   "Pokemon",
			PriceKeys:   []string{"holofoil", "reverseHolofoil"},
		})
		assert.Equal(t, []Variant{Normal, Holo, ReverseHolo}, got)
	})

	t.Run("1st edition key forces the stamp", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "ecard1",
			ReleaseDate: date(2002, time.September, 15),
			Rarity:      "Common",
			Supertype:   "Pokemon",
			PriceKeys:   []string{"1stEditionNormal"},
		})
		assert.Contains(t, got, FirstEdition)
	})

	t.Run("unknown era with price keys", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:   "xx99",
			Rarity:    "Rare",
			Supertype: "Pokemon",
			PriceKeys: []string{"holofoil"},
		})
		assert.Equal(t, []Variant{Normal, Holo}, got)
	})

	t.Run("unknown era defaults to normal only", func(t *testing.T) {
		got := Infer(CardInfo{SetCode: "xx99", Rarity: "Rare", Supertype: "Pokemon"})
		assert.Equal(t, []Variant{Normal}, got)
	})

	t.Run("unrecognized price keys are ignored", func(t *testing.T) {
		got := Infer(CardInfo{
			SetCode:     "sv1",
			ReleaseDate: date(2023, time.March, 31),
			Rarity:      "Common",
			Supertype:   "Pokemon",
			PriceKeys:   []string{"gradedPSA10"},
		})
		assert.Equal(t, []Variant{Normal, ReverseHolo}, got)
	})
}

func TestCount(t *testing.T) {
	n := Count(CardInfo{
		SetCode:     "sv3pt5",
		ReleaseDate: date(2023, time.September, 22),
		Rarity:      "Common",
		Supertype:   "Pokemon",
	})
	assert.Equal(t, 3, n)
}
