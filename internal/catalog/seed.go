package catalog

import "vrukshavalli/internal/domain"

// Seed returns the baseline nursery catalog. The store starts from this
// list until an admin edit writes the first catalog document.
func Seed() []domain.Plant {
	return []domain.Plant{
		{
			ID: "1", Name: "Monstera Deliciosa", Category: domain.CategoryIndoor,
			Price: 899, OriginalPrice: 1199, Image: "indoor-plants.jpg",
			Description: "The stunning Swiss Cheese Plant with beautiful fenestrated leaves that will transform any indoor space.",
			CareTips: []string{
				"Bright, indirect sunlight",
				"Water when top inch of soil is dry",
				"Humidity 60-70%",
				"Temperature 18-27°C",
			},
			Features: []string{"Air purifying", "Easy care", "Fast growing", "Instagram worthy"},
			InStock:  true, Rating: 4.8, Reviews: 234,
		},
		{
			ID: "2", Name: "Fiddle Leaf Fig", Category: domain.CategoryIndoor,
			Price: 1299, Image: "indoor-plants.jpg",
			Description: "Large, glossy violin-shaped leaves make this the perfect statement plant for modern homes.",
			CareTips: []string{
				"Bright, indirect light",
				"Water weekly in summer",
				"Wipe leaves regularly",
				"Avoid cold drafts",
			},
			Features: []string{"Statement piece", "Large leaves", "Designer favorite", "Instagram worthy"},
			InStock:  true, Rating: 4.6, Reviews: 189,
		},
		{
			ID: "3", Name: "Snake Plant", Category: domain.CategoryIndoor,
			Price: 599, Image: "indoor-plants.jpg",
			Description: "The ultimate low-maintenance plant that thrives in any condition and purifies air efficiently.",
			CareTips: []string{
				"Low to bright indirect light",
				"Water every 2-3 weeks",
				"Very drought tolerant",
				"Perfect for beginners",
			},
			Features: []string{"Nearly indestructible", "Air purifying", "Low light tolerant", "Beginner friendly"},
			InStock:  true, Rating: 4.9, Reviews: 567,
		},
		{
			ID: "4", Name: "Hibiscus Rosa-Sinensis", Category: domain.CategoryOutdoor,
			Price: 799, Image: "outdoor-plants.jpg",
			Description: "Vibrant flowering shrub that brings tropical beauty to your garden with continuous blooms.",
			CareTips: []string{
				"Full sun to partial shade",
				"Water daily in summer",
				"Regular pruning needed",
				"Feed monthly",
			},
			Features: []string{"Continuous blooms", "Attracts butterflies", "Heat tolerant", "Colorful flowers"},
			InStock:  true, Rating: 4.7, Reviews: 156,
		},
		{
			ID: "5", Name: "Bougainvillea", Category: domain.CategoryOutdoor,
			Price: 699, Image: "outdoor-plants.jpg",
			Description: "Stunning flowering vine with papery bracts in brilliant colors that cascade beautifully.",
			CareTips: []string{
				"Full sun required",
				"Drought tolerant once established",
				"Prune after flowering",
				"Support with trellis",
			},
			Features: []string{"Drought tolerant", "Colorful bracts", "Climbing vine", "Long blooming"},
			InStock:  true, Rating: 4.5, Reviews: 203,
		},
		{
			ID: "6", Name: "Bird of Paradise", Category: domain.CategoryExotic,
			Price: 1899, OriginalPrice: 2299, Image: "exotic-plants.jpg",
			Description: "Majestic tropical plant with striking orange and blue flowers that resemble exotic birds.",
			CareTips: []string{
				"Bright indirect to partial direct sun",
				"High humidity required",
				"Water when soil starts to dry",
				"Regular misting",
			},
			Features: []string{"Exotic flowers", "Dramatic foliage", "Conversation starter", "Premium quality"},
			InStock:  true, Rating: 4.8, Reviews: 89,
		},
		{
			ID: "7", Name: "Orchid Collection", Category: domain.CategoryExotic,
			Price: 1499, Image: "exotic-plants.jpg",
			Description: "Curated collection of premium orchids featuring Phalaenopsis and Dendrobium varieties.",
			CareTips: []string{
				"Filtered bright light",
				"Special orchid bark medium",
				"Water with ice cubes weekly",
				"High humidity environment",
			},
			Features: []string{"Premium varieties", "Long-lasting blooms", "Gift worthy", "Care guide included"},
			InStock:  true, Rating: 4.6, Reviews: 124,
		},
		{
			ID: "8", Name: "Carnivorous Plant Set", Category: domain.CategoryExotic,
			Price: 1299, Image: "exotic-plants.jpg",
			Description: "Fascinating collection including Venus Flytraps, Pitcher Plants, and Sundews.",
			CareTips: []string{
				"Bright indirect light",
				"Use distilled water only",
				"High humidity required",
				"No fertilizer needed",
			},
			Features: []string{"Unique specimens", "Educational", "Natural pest control", "Conversation piece"},
			InStock:  true, Rating: 4.4, Reviews: 78,
		},
	}
}
