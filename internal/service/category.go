package service

import (
	"strings"

	"github.com/adpulse/opensea-api/internal/entity"
)

// categoryKeywords holds the static keyword lists, Arabic and English, per
// vertical. Matching is raw substring search: a keyword inside an unrelated
// word still counts. That imprecision is intentional product behavior; do
// not add word-boundary checks without sign-off.
var categoryKeywords = map[entity.Category][]string{
	entity.CategoryPersonalTrainers: {
		"مدرب", "تدريب", "لياقة", "رياضة", "جيم", "كمال اجسام",
		"trainer", "coach", "fitness", "workout", "gym", "personal training",
	},
	entity.CategoryYachtRentals: {
		"يخت", "يخوت", "قارب", "رحلة بحرية", "بحر",
		"yacht", "boat", "cruise", "sailing", "marina",
	},
	entity.CategoryApartments: {
		"شقة", "شقق", "سكن", "ايجار", "إيجار", "عقار",
		"apartment", "flat", "studio", "rent", "accommodation",
	},
	entity.CategoryBeautyClinics: {
		"تجميل", "عيادة", "بشرة", "ليزر", "صالون",
		"beauty", "clinic", "salon", "skincare", "laser", "spa",
	},
	entity.CategoryKidsServices: {
		"اطفال", "أطفال", "حضانة", "روضة",
		"kids", "children", "nursery", "daycare", "babysit",
	},
	entity.CategoryHousekeeping: {
		"تنظيف", "خادمة", "عاملة", "منزل",
		"cleaning", "maid", "housekeeping", "housekeeper", "laundry",
	},
}

// DetectCategory maps free text to one of the fixed service verticals.
// Matching is case-insensitive substring search over each category's keyword
// list, checked in declaration order; the first category with any hit wins.
// Returns CategoryNone when nothing matches (including empty input).
func DetectCategory(message string) entity.Category {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return entity.CategoryNone
	}

	for _, category := range entity.Categories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}

	return entity.CategoryNone
}
