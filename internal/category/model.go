// File: internal/category/model.go
package category

import "carmarket_backend/internal/car"

// CategoryInfo is the static display metadata for a browse category. The
// catalog is fixed: categories are derived tags, not stored rows, so there
// is nothing to persist or administer here.
type CategoryInfo struct {
	Name        string       `json:"name"`
	Slug        car.Category `json:"slug"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	Features    []string     `json:"features"`
}

// CategoryResponse pairs the static metadata with the live count of
// approved listings carrying the tag.
type CategoryResponse struct {
	CategoryInfo
	Count int `json:"count"`
}

var catalog = []CategoryInfo{
	{
		Name:        "SUVs",
		Slug:        car.CategorySUVs,
		Image:       "https://images.unsplash.com/photo-1533473359331-0135ef1b58bf?w=1200&q=80",
		Description: "Spacious, versatile, and perfect for families. Explore our wide selection of SUVs from compact crossovers to full-size luxury models.",
		Features:    []string{"All-Wheel Drive", "Spacious Interior", "High Ground Clearance", "Family Friendly"},
	},
	{
		Name:        "Sedans",
		Slug:        car.CategorySedans,
		Image:       "https://images.unsplash.com/photo-1550355291-bbee04a92027?w=1200&q=80",
		Description: "Classic elegance meets modern efficiency. Find the perfect sedan for your daily commute or weekend getaways.",
		Features:    []string{"Fuel Efficient", "Smooth Handling", "Comfortable Ride", "Elegant Design"},
	},
	{
		Name:        "Sports Cars",
		Slug:        car.CategorySports,
		Image:       "https://images.unsplash.com/photo-1583121274602-3e2820c69888?w=1200&q=80",
		Description: "Pure driving pleasure. Discover high-performance sports cars that deliver adrenaline-pumping acceleration and precision handling.",
		Features:    []string{"High Performance", "Precision Handling", "Aerodynamic Design", "Premium Sound"},
	},
	{
		Name:        "Electric",
		Slug:        car.CategoryElectric,
		Image:       "https://images.unsplash.com/photo-1593941707882-a5bba14938c7?w=1200&q=80",
		Description: "The future of driving is here. Browse cutting-edge electric vehicles with zero emissions and instant torque.",
		Features:    []string{"Zero Emissions", "Instant Torque", "Lower Running Costs", "Advanced Tech"},
	},
	{
		Name:        "Luxury",
		Slug:        car.CategoryLuxury,
		Image:       "https://images.unsplash.com/photo-1563720360172-67b8f3dce741?w=1200&q=80",
		Description: "Indulge in automotive excellence. Experience premium craftsmanship, cutting-edge technology, and unparalleled comfort.",
		Features:    []string{"Premium Materials", "Advanced Comfort", "Cutting-Edge Tech", "Status Symbol"},
	},
	{
		Name:        "Trucks",
		Slug:        car.CategoryTrucks,
		Image:       "https://images.unsplash.com/photo-1551830820-330a71b99659?w=1200&q=80",
		Description: "Built tough for work and play. Find powerful trucks capable of hauling, towing, and conquering any terrain.",
		Features:    []string{"High Towing Capacity", "Durable Build", "Off-Road Capable", "Versatile Bed"},
	},
}
