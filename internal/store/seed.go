package store

// SeedCatalog returns a fresh copy of the static catalog.
func SeedCatalog() []Item {
	return []Item{
		{
			ID: 1, Brand: "Apple", Name: "MacBook Air M3", Price: 39900, Category: "Ultrabook",
			Specs: map[string]string{
				"cpu": "Apple M3 Chip (8-core)", "ram": "8GB Unified", "storage": "256GB SSD",
				"battery": "Up to 18 hours", "weight": "1.24 kg", "screen": "13.6 Liquid Retina",
			},
			Scores: Scores{Performance: 7.5, Battery: 9.5, Portability: 9.0, Display: 8.5, Features: 7.0},
		},
		{
			ID: 2, Brand: "Lenovo", Name: "Legion Pro 5", Price: 45900, Category: "Gaming Laptop",
			Specs: map[string]string{
				"cpu": "Intel Core i7-13700HX", "ram": "16GB DDR5", "storage": "1TB M.2 SSD",
				"battery": "Approx 5 hours", "weight": "2.50 kg", "screen": "16 WQXGA 165Hz",
			},
			Scores: Scores{Performance: 9.8, Battery: 4.0, Portability: 3.0, Display: 8.0, Features: 9.0},
		},
		{
			ID: 9, Brand: "Asus", Name: "ROG Strix G16CH", Price: 59900, Category: "Gaming Desktop",
			Specs: map[string]string{
				"cpu": "Intel Core i7-13700F", "ram": "16GB DDR4", "storage": "1TB SSD",
				"battery": "N/A (Plugged)", "weight": "11.0 kg", "screen": "Monitor required",
			},
			Scores: Scores{Performance: 9.9, Battery: 0.0, Portability: 1.0, Display: 0.0, Features: 8.5},
		},
		{
			ID: 10, Brand: "Apple", Name: "iPhone 15 Pro Max", Price: 48900, Category: "Flagship Phone",
			Specs: map[string]string{
				"cpu": "A17 Pro", "ram": "8GB", "storage": "256GB",
				"battery": "29 hours video", "weight": "221 g", "screen": "6.7 Super Retina XDR",
			},
			Scores: Scores{Performance: 9.0, Battery: 8.5, Portability: 10.0, Display: 9.5, Features: 9.5},
		},
		{
			ID: 3, Brand: "Asus", Name: "ZenBook OLED 14", Price: 35900, Category: "Ultrabook",
			Specs: map[string]string{
				"cpu": "Intel Core Ultra 7", "ram": "16GB LPDDR5X", "storage": "1TB M.2 SSD",
				"battery": "Up to 10 hours", "weight": "1.20 kg", "screen": "14 3K OLED 120Hz",
			},
			Scores: Scores{Performance: 8.0, Battery: 7.5, Portability: 9.5, Display: 9.5, Features: 8.0},
		},
		{
			ID: 5, Brand: "Asus", Name: "ProArt Studiobook", Price: 79900, Category: "Workstation Laptop",
			Specs: map[string]string{
				"cpu": "Intel Core i9-13980HX", "ram": "64GB DDR5", "storage": "2TB SSD RAID 0",
				"battery": "Approx 4 hours", "weight": "2.40 kg", "screen": "16 3.2K OLED 3D",
			},
			Scores: Scores{Performance: 10.0, Battery: 3.0, Portability: 4.0, Display: 10.0, Features: 10.0},
		},
		{
			ID: 7, Brand: "Asus", Name: "TUF Gaming F15", Price: 24990, Category: "Gaming Laptop",
			Specs: map[string]string{
				"cpu": "Intel Core i5-11400H", "ram": "8GB DDR4", "storage": "512GB NVMe",
				"battery": "48WHrs", "weight": "2.30 kg", "screen": "15.6 FHD 144Hz",
			},
			Scores: Scores{Performance: 7.0, Battery: 5.0, Portability: 4.0, Display: 7.0, Features: 8.0},
		},
	}
}
