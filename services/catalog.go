package services

import "github.com/LovationAdmin/giftfinder-api/models"

// fallbackCatalog is served when live retrieval is unavailable or empty.
// Read-only; FallbackResults hands out copies.
var fallbackCatalog = []models.GiftResult{
	{
		ID:             "fallback-headphones",
		Name:           "Premium Wireless Bluetooth Headphones",
		Description:    "High-quality noise-canceling headphones perfect for music lovers",
		Price:          2999,
		ImageURL:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
		ProductURL:     "https://www.amazon.in/headphones",
		StoreName:      "Amazon India",
		Rating:         4.8,
		Tags:           []string{"electronics", "music", "premium"},
		RelevanceScore: 0.95,
	},
	{
		ID:             "fallback-chai-set",
		Name:           "Artisan Masala Chai Gift Set",
		Description:    "Premium tea collection with traditional Indian spices and brewing accessories",
		Price:          899,
		ImageURL:       "https://images.unsplash.com/photo-1594631661960-69a5789ce67b?w=400&h=400&fit=crop",
		ProductURL:     "https://www.teabox.com/gift-sets",
		StoreName:      "Teabox",
		Rating:         4.9,
		Tags:           []string{"tea", "traditional", "gourmet"},
		RelevanceScore: 0.88,
	},
	{
		ID:             "fallback-fitness-band",
		Name:           "Smart Fitness Band with Heart Rate Monitor",
		Description:    "Track workouts, heart rate, and sleep patterns with this advanced fitness tracker",
		Price:          1999,
		ImageURL:       "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400&h=400&fit=crop",
		ProductURL:     "https://www.flipkart.com/fitness-tracker",
		StoreName:      "Flipkart",
		Rating:         4.6,
		Tags:           []string{"fitness", "health", "smart"},
		RelevanceScore: 0.82,
	},
	{
		ID:             "fallback-earbuds",
		Name:           "True Wireless Bluetooth Earbuds",
		Description:    "Compact earbuds with charging case and 20-hour battery life",
		Price:          999,
		ImageURL:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=400&h=400&fit=crop",
		ProductURL:     "https://www.flipkart.com/wireless-earbuds",
		StoreName:      "Flipkart",
		Rating:         4.3,
		Tags:           []string{"electronics", "music", "gadget"},
		RelevanceScore: 0.84,
	},
	{
		ID:             "fallback-candles",
		Name:           "Handcrafted Aromatherapy Candle Set",
		Description:    "Hand-poured soy candles with essential oils for relaxation and meditation",
		Price:          749,
		ImageURL:       "https://images.unsplash.com/photo-1602874801006-36d71b7cbb73?w=400&h=400&fit=crop",
		ProductURL:     "https://www.nykaa.com/candles",
		StoreName:      "Nykaa",
		Rating:         4.7,
		Tags:           []string{"home", "relaxation", "aromatherapy"},
		RelevanceScore: 0.79,
	},
	{
		ID:             "fallback-journal",
		Name:           "Leather-bound Journal with Fountain Pen",
		Description:    "Handcrafted leather journal with premium fountain pen for writers",
		Price:          1299,
		ImageURL:       "https://images.unsplash.com/photo-1544816155-12df9643f363?w=400&h=400&fit=crop",
		ProductURL:     "https://www.amazon.in/leather-journal",
		StoreName:      "Amazon India",
		Rating:         4.5,
		Tags:           []string{"writing", "leather", "premium"},
		RelevanceScore: 0.85,
	},
	{
		ID:             "fallback-chocolates",
		Name:           "Artisan Dark Chocolate Gift Box",
		Description:    "Assorted premium chocolates from award-winning Indian chocolatiers",
		Price:          649,
		ImageURL:       "https://images.unsplash.com/photo-1549007994-cb92caebd54b?w=400&h=400&fit=crop",
		ProductURL:     "https://www.fabelle.in/gift-boxes",
		StoreName:      "Fabelle",
		Rating:         4.9,
		Tags:           []string{"chocolate", "gourmet", "sweet"},
		RelevanceScore: 0.91,
	},
	{
		ID:             "fallback-desk-organizer",
		Name:           "Bamboo Desk Organizer",
		Description:    "Useful multi-compartment organizer for pens, phone and stationery",
		Price:          799,
		ImageURL:       "https://images.unsplash.com/photo-1593062096033-9a26b09da705?w=400&h=400&fit=crop",
		ProductURL:     "https://www.amazon.in/desk-organizer",
		StoreName:      "Amazon India",
		Rating:         4.4,
		Tags:           []string{"useful", "home", "office"},
		RelevanceScore: 0.76,
	},
	{
		ID:             "fallback-pashmina",
		Name:           "Traditional Pashmina Shawl",
		Description:    "Authentic Kashmir Pashmina shawl with intricate embroidery work",
		Price:          3499,
		ImageURL:       "https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?w=400&h=400&fit=crop",
		ProductURL:     "https://www.kashmirica.com/pashmina",
		StoreName:      "Kashmirica",
		Rating:         4.8,
		Tags:           []string{"fashion", "traditional", "luxury"},
		RelevanceScore: 0.87,
	},
	{
		ID:             "fallback-yoga-kit",
		Name:           "Yoga Meditation Starter Kit",
		Description:    "Complete yoga set with mat, blocks, strap and meditation cushion",
		Price:          1899,
		ImageURL:       "https://images.unsplash.com/photo-1588286840104-8957b019727f?w=400&h=400&fit=crop",
		ProductURL:     "https://www.decathlon.in/yoga-kit",
		StoreName:      "Decathlon",
		Rating:         4.6,
		Tags:           []string{"fitness", "yoga", "wellness"},
		RelevanceScore: 0.83,
	},
	{
		ID:             "fallback-diya-set",
		Name:           "Hand-painted Brass Diya Set",
		Description:    "Set of four traditional brass diyas for festive evenings",
		Price:          599,
		ImageURL:       "https://images.unsplash.com/photo-1605027990121-cbae9e0642df?w=400&h=400&fit=crop",
		ProductURL:     "https://www.amazon.in/brass-diya-set",
		StoreName:      "Amazon India",
		Rating:         4.6,
		Tags:           []string{"traditional", "home", "festive"},
		RelevanceScore: 0.8,
	},
	{
		ID:             "fallback-gulal",
		Name:           "Organic Herbal Gulal Pack",
		Description:    "Skin-safe colorful herbal gulal in five shades",
		Price:          399,
		ImageURL:       "https://images.unsplash.com/photo-1615966650071-855b15f29ad1?w=400&h=400&fit=crop",
		ProductURL:     "https://www.flipkart.com/herbal-gulal",
		StoreName:      "Flipkart",
		Rating:         4.2,
		Tags:           []string{"colorful", "festive", "eco"},
		RelevanceScore: 0.74,
	},
}

// FallbackResults returns catalog entries priced within budgetLimit, in static
// order with their fixed scores, capped at MaxResults.
func FallbackResults(budgetLimit float64) []models.GiftResult {
	out := make([]models.GiftResult, 0, MaxResults)
	for _, g := range fallbackCatalog {
		if g.Price > budgetLimit {
			continue
		}
		g.Tags = append([]string(nil), g.Tags...)
		out = append(out, g)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

// FallbackCatalogSize is exposed for tests and the CLI.
func FallbackCatalogSize() int {
	return len(fallbackCatalog)
}
