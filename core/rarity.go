package core

// Rarity is the ordinal tier of a souvenir
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

var rarityOrder = map[Rarity]int{
	RarityCommon:    1,
	RarityUncommon:  2,
	RarityRare:      3,
	RarityEpic:      4,
	RarityLegendary: 5,
}

// Order returns the tier rank, 0 for unknown rarities
func (r Rarity) Order() int {
	return rarityOrder[r]
}

// Valid reports whether r is a known tier
func (r Rarity) Valid() bool {
	return r.Order() > 0
}

// Next returns the tier one above r
func (r Rarity) Next() (Rarity, bool) {
	switch r {
	case RarityCommon:
		return RarityUncommon, true
	case RarityUncommon:
		return RarityRare, true
	case RarityRare:
		return RarityEpic, true
	case RarityEpic:
		return RarityLegendary, true
	}
	return "", false
}
