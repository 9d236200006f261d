// File: internal/car/classifier.go
package car

import "strings"

// Category is a derived browse tag. It is computed from listing content and
// never persisted, so tag rules can change without a data migration.
type Category string

const (
	CategorySUVs     Category = "suvs"
	CategorySedans   Category = "sedans"
	CategorySports   Category = "sports"
	CategoryElectric Category = "electric"
	CategoryLuxury   Category = "luxury"
	CategoryTrucks   Category = "trucks"
)

// Categories lists every tag the classifier can produce, in display order.
var Categories = []Category{
	CategorySUVs,
	CategorySedans,
	CategorySports,
	CategoryElectric,
	CategoryLuxury,
	CategoryTrucks,
}

type classifierRule struct {
	category Category
	matches  func(title string, brand string, fuel FuelType) bool
}

var truckKeywords = []string{
	"truck", "pickup", "f-150", "f150", "ram", "silverado",
	"tundra", "tacoma", "frontier", "colorado",
}

var luxuryBrands = map[string]bool{
	"mercedes-benz": true,
	"bmw":           true,
	"audi":          true,
	"lexus":         true,
	"bentley":       true,
	"rolls-royce":   true,
	"jaguar":        true,
	"maserati":      true,
	"porsche":       true,
	"cadillac":      true,
	"genesis":       true,
	"acura":         true,
	"infiniti":      true,
}

var sportsBrands = map[string]bool{
	"ferrari":     true,
	"lamborghini": true,
	"mclaren":     true,
	"lotus":       true,
}

var sportsKeywords = []string{"sport", "coupe", "convertible", "roadster"}

var sportsModels = []string{
	"mustang", "camaro", "corvette", "supra", "mx-5", "miata", "86", "brz",
}

var suvKeywords = []string{
	"suv", "crossover", "x5", "x3", "x7", "gle", "glc", "gls",
	"rx", "nx", "ux", "cr-v", "rav4", "highlander", "explorer",
	"escalade", "range rover", "defender", "4runner", "tahoe",
	"suburban", "pilot", "passport", "edge", "blazer",
	"palisade", "telluride",
}

// classifierRules is evaluated in order; the first matching rule wins, so
// trucks beat electric beat luxury beat sports beat suvs. Anything left over
// is a sedan.
var classifierRules = []classifierRule{
	{CategoryTrucks, func(title, _ string, _ FuelType) bool {
		return containsAny(title, truckKeywords)
	}},
	{CategoryElectric, func(title, brand string, fuel FuelType) bool {
		return fuel == FuelElectric || brand == "tesla" ||
			strings.Contains(title, "ev") || strings.Contains(title, "electric")
	}},
	{CategoryLuxury, func(title, brand string, _ FuelType) bool {
		return strings.Contains(title, "luxury") || luxuryBrands[brand]
	}},
	{CategorySports, func(title, brand string, _ FuelType) bool {
		return containsAny(title, sportsKeywords) || sportsBrands[brand] ||
			containsAny(title, sportsModels)
	}},
	{CategorySUVs, func(title, _ string, _ FuelType) bool {
		return containsAny(title, suvKeywords)
	}},
}

// Classify derives the browse category of a car. It is total and
// deterministic: every car maps to exactly one tag, and matching is
// case-insensitive on title and brand.
func Classify(c *Car) Category {
	title := strings.ToLower(c.Title)
	brand := strings.ToLower(c.Brand)
	for _, rule := range classifierRules {
		if rule.matches(title, brand, c.FuelType) {
			return rule.category
		}
	}
	return CategorySedans
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
