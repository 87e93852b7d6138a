package domain

import "strings"

// Category is the coarse taxonomic grouping used for browsing and filtering.
type Category string

const (
	CategoryMammal     Category = "mammal"
	CategoryBird       Category = "bird"
	CategoryReptile    Category = "reptile"
	CategoryAmphibian  Category = "amphibian"
	CategoryInsect     Category = "insect"
	CategoryFish       Category = "fish"
	CategoryArachnid   Category = "arachnid"
	CategoryCrustacean Category = "crustacean"
	CategoryPlant      Category = "plant"
	CategoryFungus     Category = "fungus"
	CategoryOther      Category = "other"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryMammal, CategoryBird, CategoryReptile, CategoryAmphibian, CategoryInsect,
	CategoryFish, CategoryArachnid, CategoryCrustacean, CategoryPlant, CategoryFungus,
	CategoryOther,
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryMammal, CategoryBird, CategoryReptile, CategoryAmphibian, CategoryInsect,
		CategoryFish, CategoryArachnid, CategoryCrustacean, CategoryPlant, CategoryFungus,
		CategoryOther:
		return true
	}
	return false
}

// ParseCategory maps a stored or user-supplied value onto the closed set.
// Unknown values become CategoryOther.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// Rarity is the abundance class of a species.
type Rarity string

const (
	RarityCommon     Rarity = "common"
	RarityUncommon   Rarity = "uncommon"
	RarityRare       Rarity = "rare"
	RarityEndangered Rarity = "endangered"
)

func (r Rarity) String() string { return string(r) }

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEndangered:
		return true
	}
	return false
}

// ParseRarity maps a stored conservation status onto a Rarity.
// Missing or unknown values default to RarityCommon.
func ParseRarity(s string) Rarity {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if r.IsValid() {
		return r
	}
	return RarityCommon
}

// Source identifies where a species record came from.
type Source string

const (
	SourceCatalog     Source = "catalog"
	SourceINaturalist Source = "inaturalist"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceCatalog, SourceINaturalist:
		return true
	}
	return false
}
