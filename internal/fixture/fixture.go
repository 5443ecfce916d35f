package fixture

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// Data holds the seed collections the catalog is constructed from.
// Referential integrity (product -> category, product -> seller) holds by
// construction here; the catalog never re-checks it.
type Data struct {
	Users      []*domain.User
	Categories []*domain.Category
	Products   []*domain.Product
}

const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate builds the demo dataset: three users (one per role), three
// categories, and productCount products cycling through the categories.
// The same seed always produces the same dataset.
func Generate(seed int64, productCount int) *Data {
	rng := rand.New(rand.NewSource(seed))
	now := time.Now()

	users := []*domain.User{
		newUser("Admin", "User", "admin@example.com", domain.RoleAdmin, now),
		newUser("Seller", "User", "seller@example.com", domain.RoleSeller, now),
		newUser("Customer", "User", "customer@example.com", domain.RoleCustomer, now),
	}
	seller := users[1]

	categories := []*domain.Category{
		newCategory("Laptops", "Powerful and portable computers.", now),
		newCategory("Smartphones", "Stay connected on the go.", now),
		newCategory("Accessories", "Enhance your devices.", now),
	}

	products := make([]*domain.Product, 0, productCount)
	for i := 0; i < productCount; i++ {
		category := categories[i%len(categories)]
		price := roundCents(200 + rng.Float64()*1300)

		var discount *float64
		if i%3 == 0 {
			d := roundCents(price * 0.85)
			discount = &d
		}

		// Singularize the category name for the product name, e.g.
		// "Laptops" -> "Laptop Model 4".
		name := fmt.Sprintf("%s Model %d", strings.TrimSuffix(category.Name, "s"), i+1)
		created := now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour))))

		products = append(products, &domain.Product{
			ID:            uuid.New(),
			Name:          name,
			Slug:          fmt.Sprintf("%s-model-%d", category.Slug, i+1),
			Description:   "A high-performance device with a stunning display and all-day battery life. Perfect for work and play.",
			Price:         price,
			DiscountPrice: discount,
			Stock:         rng.Intn(100),
			SKU:           "SKU-" + randomSKU(rng),
			CategoryID:    category.ID,
			SellerID:      seller.ID,
			Images:        []string{fmt.Sprintf("https://picsum.photos/seed/%d/600/400", i+1)},
			Specifications: map[string]string{
				"Processor": "Next-Gen",
				"RAM":       "16GB",
				"Storage":   "512GB SSD",
			},
			Tags:      []string{strings.ToLower(category.Name), "new-arrival"},
			Rating:    roundTenth(3.5 + rng.Float64()*1.5),
			IsActive:  true,
			CreatedAt: created,
			UpdatedAt: now,
		})
	}

	return &Data{
		Users:      users,
		Categories: categories,
		Products:   products,
	}
}

func newUser(first, last, email string, role domain.Role, now time.Time) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newCategory(name, description string, now time.Time) *domain.Category {
	return &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        strings.ToLower(name),
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func randomSKU(rng *rand.Rand) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = skuAlphabet[rng.Intn(len(skuAlphabet))]
	}
	return string(b)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func roundTenth(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
