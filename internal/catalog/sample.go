package catalog

import (
	"fmt"
	"time"
)

// Section describes a category or collection landing page.
type Section struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

var (
	black     = Color{Name: "Black", Value: "#000000"}
	white     = Color{Name: "White", Value: "#FFFFFF"}
	navy      = Color{Name: "Navy", Value: "#000080"}
	grey      = Color{Name: "Grey", Value: "#808080"}
	olive     = Color{Name: "Olive", Value: "#556B2F"}
	lettersSz = []string{"S", "M", "L", "XL"}
)

func pexels(ids ...int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=800", id, id))
	}
	return out
}

func price(v int64) *int64 { return &v }

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleProducts returns a fresh copy of the eight-item sample catalog used
// for seeding and local browsing.
func SampleProducts() []Product {
	return []Product{
		{
			ID:             "1",
			Slug:           "oversized-street-tee",
			Name:           "Oversized Street Tee",
			Description:    "This oversized tee features a relaxed fit with dropped shoulders for the ultimate street style look. Made from premium cotton for all-day comfort.",
			Price:          1999,
			CompareAtPrice: price(2499),
			Images:         pexels(5384423, 5384424, 5384425),
			Category:       "tees",
			Collections:    []string{"new-arrivals", "street-essentials"},
			Tags:           []string{"oversized", "cotton", "streetwear"},
			Sizes:          []string{"S", "M", "L", "XL", "XXL"},
			Colors:         []Color{black, white, {Name: "Sage Green", Value: "#7D8471"}},
			Featured:       true,
			Trending:       true,
			New:            true,
			InStock:        true,
			CreatedAt:      ts("2023-09-15T10:00:00Z"),
		},
		{
			ID:             "2",
			Slug:           "cargo-joggers",
			Name:           "Cargo Joggers",
			Description:    "Elevate your casual wardrobe with these relaxed-fit cargo joggers. Featuring multiple pockets and an adjustable drawstring waist for practicality and comfort.",
			Price:          2499,
			CompareAtPrice: price(2999),
			Images:         pexels(1176618, 1183266, 1844012),
			Category:       "bottoms",
			Collections:    []string{"bestsellers", "street-essentials"},
			Tags:           []string{"cargo", "joggers", "streetwear"},
			Sizes:          append([]string(nil), lettersSz...),
			Colors:         []Color{black, olive, {Name: "Beige", Value: "#F5F5DC"}},
			Featured:       true,
			Trending:       true,
			InStock:        true,
			CreatedAt:      ts("2023-08-20T09:15:00Z"),
		},
		{
			ID:             "3",
			Slug:           "urban-tech-jacket",
			Name:           "Urban Tech Jacket",
			Description:    "This urban-inspired jacket combines style with functionality. Water-resistant outer shell with multiple pockets and a concealed hood for unexpected weather changes.",
			Price:          3999,
			CompareAtPrice: price(4499),
			Images:         pexels(1183266, 1040945, 1124468),
			Category:       "outerwear",
			Collections:    []string{"new-arrivals", "urban-tech"},
			Tags:           []string{"jacket", "waterproof", "urban"},
			Sizes:          append([]string(nil), lettersSz...),
			Colors:         []Color{black, navy},
			Featured:       true,
			New:            true,
			InStock:        true,
			CreatedAt:      ts("2023-09-22T11:30:00Z"),
		},
		{
			ID:          "4",
			Slug:        "graphic-print-hoodie",
			Name:        "Graphic Print Hoodie",
			Description: "Stand out with this bold graphic print hoodie. Features an oversized fit with a kangaroo pocket and adjustable drawstring hood for the perfect street style look.",
			Price:       2799,
			Images:      pexels(6347892, 5384423, 6311475),
			Category:    "hoodies",
			Collections: []string{"bestsellers", "graphic-collection"},
			Tags:        []string{"hoodie", "graphic", "streetwear"},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []Color{black, grey},
			Trending:    true,
			InStock:     true,
			CreatedAt:   ts("2023-08-05T14:20:00Z"),
		},
		{
			ID:             "5",
			Slug:           "slim-fit-jeans",
			Name:           "Slim Fit Jeans",
			Description:    "These premium slim fit jeans offer the perfect balance between comfort and style. Crafted from high-quality denim with a touch of stretch for all-day wearability.",
			Price:          2599,
			CompareAtPrice: price(3199),
			Images:         pexels(1598507, 1487781, 1176618),
			Category:       "bottoms",
			Collections:    []string{"essentials", "denim-collection"},
			Tags:           []string{"jeans", "slim-fit", "denim"},
			Sizes:          []string{"28", "30", "32", "34", "36"},
			Colors:         []Color{{Name: "Blue", Value: "#0000FF"}, black, {Name: "Washed Blue", Value: "#5D8AA8"}},
			InStock:        true,
			CreatedAt:      ts("2023-07-12T10:45:00Z"),
		},
		{
			ID:          "6",
			Slug:        "urban-bomber-jacket",
			Name:        "Urban Bomber Jacket",
			Description: "A modern take on the classic bomber jacket, featuring a sleek design with ribbed cuffs and hem. Perfect for transitional weather and easy to layer.",
			Price:       3499,
			Images:      pexels(1040945, 1183266, 1124468),
			Category:    "outerwear",
			Collections: []string{"bestsellers", "urban-essentials"},
			Tags:        []string{"bomber", "jacket", "urban"},
			Sizes:       append([]string(nil), lettersSz...),
			Colors:      []Color{black, olive},
			Featured:    true,
			Trending:    true,
			InStock:     true,
			CreatedAt:   ts("2023-09-01T09:30:00Z"),
		},
		{
			ID:          "7",
			Slug:        "statement-graphic-tee",
			Name:        "Statement Graphic Tee",
			Description: "Express yourself with this bold statement graphic tee. Made from soft 100% cotton with a regular fit for everyday comfort.",
			Price:       1599,
			Images:      pexels(5384423, 5384424, 5384425),
			Category:    "tees",
			Collections: []string{"graphic-collection", "essentials"},
			Tags:        []string{"tee", "graphic", "statement"},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []Color{white, black},
			New:         true,
			InStock:     true,
			CreatedAt:   ts("2023-09-18T15:45:00Z"),
		},
		{
			ID:             "8",
			Slug:           "tech-fleece-joggers",
			Name:           "Tech Fleece Joggers",
			Description:    "Stay comfortable and stylish with these tech fleece joggers. Features a tapered fit with zippered pockets and elastic cuffs for a modern silhouette.",
			Price:          2299,
			CompareAtPrice: price(2799),
			Images:         pexels(1176618, 1018911, 1192609),
			Category:       "bottoms",
			Collections:    []string{"urban-tech", "bestsellers"},
			Tags:           []string{"joggers", "tech-fleece", "activewear"},
			Sizes:          append([]string(nil), lettersSz...),
			Colors:         []Color{black, grey, navy},
			Trending:       true,
			InStock:        true,
			CreatedAt:      ts("2023-08-25T12:15:00Z"),
		},
	}
}

// SampleCategories lists the category landing pages of the sample catalog.
func SampleCategories() []Section {
	return []Section{
		{Slug: "tees", Name: "Tees", Description: "Our collection of stylish and comfortable tees", Image: pexels(6347892)[0]},
		{Slug: "bottoms", Name: "Bottoms", Description: "From joggers to jeans, find your perfect fit", Image: pexels(1176618)[0]},
		{Slug: "outerwear", Name: "Outerwear", Description: "Layer up with our trendy outerwear collection", Image: pexels(1183266)[0]},
		{Slug: "hoodies", Name: "Hoodies", Description: "Stay warm and stylish with our hoodie collection", Image: pexels(6311475)[0]},
	}
}

// SampleCollections lists the collection landing pages of the sample catalog.
func SampleCollections() []Section {
	return []Section{
		{Slug: "new-arrivals", Name: "New Arrivals", Description: "The latest additions to our collection", Image: pexels(5384423)[0]},
		{Slug: "bestsellers", Name: "Bestsellers", Description: "Our most popular items that everyone loves", Image: pexels(1040945)[0]},
		{Slug: "street-essentials", Name: "Street Essentials", Description: "Must-have pieces for your street style wardrobe", Image: pexels(1124468)[0]},
		{Slug: "urban-tech", Name: "Urban Tech", Description: "Where urban style meets technical innovation", Image: pexels(1192609)[0]},
	}
}
