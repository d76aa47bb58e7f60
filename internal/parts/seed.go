package parts

// DefaultInventory is the starter parts catalog loaded on first boot so the
// parts endpoints have stock to serve before real inventory is imported.
func DefaultInventory() []Part {
	return []Part{
		{
			Name:        "Premium Brake Pads",
			Description: "High-performance ceramic brake pads designed for superior stopping power and durability. These premium pads produce minimal noise and dust, and are suitable for a wide range of vehicles including luxury and performance models.",
			Price:       "$89.99",
			Image:       "brake-pads.jpg",
			Brand:       "StopTech",
			Category:    "Braking System",
			Condition:   "New",
			Warranty:    "2 Years",
		},
		{
			Name:        "Synthetic Engine Oil",
			Description: "Full synthetic motor oil that provides exceptional performance and protection. Formulated to reduce engine wear, improve fuel efficiency, and maintain performance in extreme temperatures.",
			Price:       "$45.99",
			Image:       "engine-oil.jpg",
			Brand:       "Mobil",
			Category:    "Fluids & Chemicals",
			Condition:   "New",
			Warranty:    "1 Year",
		},
		{
			Name:        "High-Flow Air Filter",
			Description: "Performance air filter that increases airflow to your engine while providing excellent filtration. This washable and reusable filter improves horsepower, acceleration, and fuel efficiency.",
			Price:       "$59.99",
			Image:       "air-filter.jpg",
			Brand:       "K&N",
			Category:    "Engine Components",
			Condition:   "New",
			Warranty:    "10 Years",
		},
		{
			Name:        "Iridium Spark Plugs",
			Description: "Premium iridium spark plugs designed for maximum performance and longevity. These plugs provide better fuel efficiency, smoother idle, and more reliable starts even in cold weather.",
			Price:       "$129.99",
			Image:       "spark-plugs.jpg",
			Brand:       "NGK",
			Category:    "Ignition",
			Condition:   "New",
			Warranty:    "5 Years",
		},
	}
}
