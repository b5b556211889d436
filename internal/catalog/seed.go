package catalog

import "github.com/3xa-store/storefront/internal/models"

// SeedProducts returns the bundled catalog used when neither the remote
// gateway nor a local snapshot can supply products. Prices are in PKR.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Wireless Bluetooth Headphones",
			Slug:        "wireless-bluetooth-headphones",
			Description: "Premium noise-cancelling headphones with crystal clear sound and long battery life.",
			Price:       12999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "electronics",
			Rating:      4.5,
			ReviewCount: 128,
			Stock:       15,
			Featured:    true,
			DarazLink:   "https://www.daraz.pk/products/headphones",
		},
		{
			ID:          "2",
			Name:        "Smart Watch Series 5",
			Slug:        "smart-watch-series-5",
			Description: "Track your fitness, receive notifications, and more with this advanced smartwatch.",
			Price:       19999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "electronics",
			Rating:      4.8,
			ReviewCount: 95,
			Stock:       8,
			Featured:    true,
			DarazLink:   "https://www.daraz.pk/products/smartwatch",
		},
		{
			ID:          "3",
			Name:        "Ergonomic Office Chair",
			Slug:        "ergonomic-office-chair",
			Description: "Comfortable chair with lumbar support for long working hours.",
			Price:       24999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "home",
			Rating:      4.3,
			ReviewCount: 67,
			Stock:       12,
			Featured:    false,
		},
		{
			ID:          "4",
			Name:        "Organic Cotton T-Shirt",
			Slug:        "organic-cotton-t-shirt",
			Description: "Soft, breathable t-shirt made from 100% organic cotton.",
			Price:       2499,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "clothing",
			Rating:      4.2,
			ReviewCount: 42,
			Stock:       50,
			Featured:    false,
			DarazLink:   "https://www.daraz.pk/products/tshirt",
		},
		{
			ID:          "5",
			Name:        "Professional DSLR Camera",
			Slug:        "professional-dslr-camera",
			Description: "Capture stunning photos and videos with this high-quality camera.",
			Price:       89999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "electronics",
			Rating:      4.9,
			ReviewCount: 31,
			Stock:       5,
			Featured:    true,
		},
		{
			ID:          "6",
			Name:        "Stainless Steel Water Bottle",
			Slug:        "stainless-steel-water-bottle",
			Description: "Keep your drinks hot or cold for hours with this insulated bottle.",
			Price:       2999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "home",
			Rating:      4.1,
			ReviewCount: 89,
			Stock:       35,
			Featured:    false,
			DarazLink:   "https://www.daraz.pk/products/waterbottle",
		},
		{
			ID:          "7",
			Name:        "Wireless Charging Pad",
			Slug:        "wireless-charging-pad",
			Description: "Fast wireless charging for compatible smartphones and devices.",
			Price:       3999,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "electronics",
			Rating:      4.4,
			ReviewCount: 56,
			Stock:       20,
			Featured:    true,
			DarazLink:   "https://www.daraz.pk/products/charger",
		},
		{
			// Promotional PKR 1 product, kept on purpose.
			ID:          "8",
			Name:        "Premium Yoga Mat",
			Slug:        "premium-yoga-mat",
			Description: "Non-slip, eco-friendly yoga mat for comfortable practice.",
			Price:       1,
			Image:       "/placeholder.svg?height=400&width=400",
			Category:    "fitness",
			Rating:      4.7,
			ReviewCount: 73,
			Stock:       18,
			Featured:    true,
		},
	}
}
