// Package variants infers which physical print variants exist for a
// card. The engine is a pure function of static era/rarity lookup
// tables plus the variant price keys reported by the pricing API; it
// keeps no state and talks to nothing.
package variants

import (
	"strings"
	"time"
)

// Variant names a physical print variant of a card.
type Variant string

const (
	Normal            Variant = "normal"
	Holo              Variant = "holo"
	ReverseHolo       Variant = "reverse_holo"
	PokeballPattern   Variant = "pokeball_pattern"
	MasterballPattern Variant = "masterball_pattern"
	FirstEdition      Variant = "first_edition"
)

// variantOrder fixes the order variants are reported in.
var variantOrder = []Variant{
	Normal, Holo, ReverseHolo, PokeballPattern, MasterballPattern, FirstEdition,
}

// CardInfo is the input to the engine: where the card was printed and
// what the pricing API says about it.
type CardInfo struct {
	SetCode     string
	ReleaseDate time.Time
	Rarity      string
	Supertype   string // Pokemon, Trainer, Energy
	// PriceKeys are the variant keys present in the pricing payload,
	// e.g. "holofoil", "reverseHolofoil", "1stEditionNormal".
	PriceKeys []string
}

// Price-key names used by the pricing API, mapped to the variants they
// prove exist.
var priceKeyVariants = map[string][]Variant{
	"normal":             {Normal},
	"holofoil":           {Holo},
	"reverseHolofoil":    {ReverseHolo},
	"1stEditionNormal":   {FirstEdition, Normal},
	"1stEditionHolofoil": {FirstEdition, Holo},
	"unlimitedNormal":    {Normal},
	"unlimitedHolofoil":  {Holo},
}

// Infer returns the variants that exist for a card, in a fixed order.
// Era rules decide the baseline; price keys from the market API force
// variants in when the rules are too conservative. A card in an
// unrecognized era with no pricing signal defaults to normal only.
func Infer(card CardInfo) []Variant {
	era := DetectEra(card.SetCode, card.ReleaseDate)
	present := make(map[Variant]bool)

	switch {
	case era == EraUnknown:
		present[Normal] = true
	case promoSets[card.SetCode]:
		// Promos print a single variant: holo-stamped for holo
		// rarities, otherwise the plain card.
		if holoOnlyRarity(card.Rarity) {
			present[Holo] = true
		} else {
			present[Normal] = true
		}
	case holoOnlyRarity(card.Rarity):
		// Rare Holo and the foil-only rarities above it never have
		// a normal or a reverse holo printing.
		present[Holo] = true
	default:
		present[Normal] = true
		if reverseHoloExists(card) {
			present[ReverseHolo] = true
			for _, v := range patternSets[card.SetCode] {
				present[v] = true
			}
		}
	}

	// Energy cards outside holo-stamped slots are normal only.
	if strings.EqualFold(card.Supertype, "Energy") && !holoOnlyRarity(card.Rarity) {
		present = map[Variant]bool{Normal: true}
	}

	if era == EraWOTC && firstEditionSets[card.SetCode] {
		present[FirstEdition] = true
	}

	// Pricing signal wins over the static rules: a listed price key
	// means the printing exists in the wild.
	for _, key := range card.PriceKeys {
		for _, v := range priceKeyVariants[key] {
			present[v] = true
		}
	}

	out := make([]Variant, 0, len(present))
	for _, v := range variantOrder {
		if present[v] {
			out = append(out, v)
		}
	}
	return out
}

// Count returns how many distinct variants exist for a card. Used for
// set-completion math.
func Count(card CardInfo) int {
	return len(Infer(card))
}

var holoMarkers = []string{
	"holo", "ultra", "secret", "rainbow", "full art", "illustration",
	"hyper", "shiny", "amazing", "radiant", "ace", "prime", "legend",
	"break",
}

// holoOnlyRarity reports whether the rarity is printed exclusively in
// foil. Plain "Rare" is not; "Rare Holo" and everything above it is.
func holoOnlyRarity(rarity string) bool {
	r := strings.ToLower(rarity)
	if r == "" || r == "common" || r == "uncommon" || r == "rare" {
		return false
	}
	for _, marker := range holoMarkers {
		if strings.Contains(r, marker) {
			return true
		}
	}
	// V, VMAX, GX, EX and similar mechanic rarities are foil only.
	return strings.Contains(r, " v") || strings.Contains(r, "ex") ||
		strings.Contains(r, "gx") || strings.HasSuffix(r, "star")
}

// reverseHoloExists reports whether the set's print run included
// reverse holos at all.
func reverseHoloExists(card CardInfo) bool {
	era := DetectEra(card.SetCode, card.ReleaseDate)
	switch era {
	case EraWOTC:
		// Only Legendary Collection, the last WotC-era set.
		return card.SetCode == "base6" ||
			(!card.ReleaseDate.IsZero() && !card.ReleaseDate.Before(reverseHoloIntroduced))
	case EraUnknown:
		return false
	default:
		return true
	}
}
