// File: internal/car/classifier_test.go
package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func carWith(title, brand string, fuel FuelType) *Car {
	return &Car{
		Title:    title,
		Brand:    brand,
		FuelType: fuel,
	}
}

func TestClassify_TableCases(t *testing.T) {
	testCases := []struct {
		name     string
		car      *Car
		expected Category
	}{
		{"pickup keyword in title", carWith("2021 Ford F-150 Pickup", "Ford", FuelPetrol), CategoryTrucks},
		{"ram keyword", carWith("Dodge Ram 1500 Crew Cab", "Dodge", FuelPetrol), CategoryTrucks},
		{"electric fuel type", carWith("Nissan Leaf SV", "Nissan", FuelElectric), CategoryElectric},
		{"tesla brand", carWith("Model 3 Long Range", "Tesla", FuelPetrol), CategoryElectric},
		{"ev keyword in title", carWith("Kia EV6 GT-Line", "Kia", FuelHybrid), CategoryElectric},
		{"luxury brand bmw", carWith("3 Series Sedan", "BMW", FuelPetrol), CategoryLuxury},
		{"luxury keyword with plain brand", carWith("Luxury Edition Sedan", "Honda", FuelPetrol), CategoryLuxury},
		{"sports brand ferrari", carWith("488 GTB", "Ferrari", FuelPetrol), CategorySports},
		{"sports model mustang", carWith("Ford Mustang GT", "Ford", FuelPetrol), CategorySports},
		{"coupe keyword", carWith("Honda Civic Coupe", "Honda", FuelPetrol), CategorySports},
		{"suv keyword", carWith("Toyota RAV4 XLE", "Toyota", FuelPetrol), CategorySUVs},
		{"crossover keyword", carWith("Mazda CX-30 Crossover", "Mazda", FuelPetrol), CategorySUVs},
		{"fallback sedan", carWith("Toyota Camry LE", "Toyota", FuelPetrol), CategorySedans},
		{"fallback sedan hybrid", carWith("Honda Accord Hybrid", "Honda", FuelHybrid), CategorySedans},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.car))
		})
	}
}

func TestClassify_PrecedenceOrder(t *testing.T) {
	// A title matching both the truck and SUV rules lands on trucks.
	assert.Equal(t, CategoryTrucks, Classify(carWith("Cadillac Truck Edition", "Cadillac", FuelPetrol)))
	// Electric beats luxury: an electric BMW is tagged electric.
	assert.Equal(t, CategoryElectric, Classify(carWith("i4 Gran Coupe", "BMW", FuelElectric)))
	// Luxury beats sports: a Porsche roadster is tagged luxury.
	assert.Equal(t, CategoryLuxury, Classify(carWith("911 Targa Roadster", "Porsche", FuelPetrol)))
	// Sports beats SUVs: a coupe with an SUV keyword is tagged sports.
	assert.Equal(t, CategorySports, Classify(carWith("X5 Coupe Conversion", "Custom", FuelPetrol)))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	lower := carWith("ford f-150 xlt", "ford", FuelPetrol)
	upper := carWith("FORD F-150 XLT", "FORD", FuelPetrol)
	assert.Equal(t, Classify(lower), Classify(upper))
	assert.Equal(t, CategoryTrucks, Classify(upper))

	assert.Equal(t, CategoryElectric, Classify(carWith("MODEL S PLAID", "TESLA", FuelPetrol)))
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	cars := []*Car{
		carWith("", "", FuelPetrol),
		carWith("???", "Unknown", FuelDiesel),
		carWith("Quux 9000", "Quux", FuelHybrid),
	}
	valid := map[Category]bool{}
	for _, tag := range Categories {
		valid[tag] = true
	}
	for _, c := range cars {
		first := Classify(c)
		assert.True(t, valid[first], "classifier produced unknown tag %q", first)
		// Same input yields the same tag on repeat.
		assert.Equal(t, first, Classify(c))
	}
}
