package vendors

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

var seedProducts = []catalog.Item{
	{ID: "prod1", Name: "Apple", Description: "Fresh Shimla Apples", Price: decimal.NewFromInt(120), Weight: "1kg", ImageURL: "https://picsum.photos/seed/apple/200", CategoryID: "cat1"},
	{ID: "prod2", Name: "Banana", Description: "Ripe Robusta Bananas", Price: decimal.NewFromInt(50), Weight: "1 dozen", ImageURL: "https://picsum.photos/seed/banana/200", CategoryID: "cat1"},
	{ID: "prod3", Name: "Carrot", Description: "Sweet Ooty Carrots", Price: decimal.NewFromInt(60), Weight: "500g", ImageURL: "https://picsum.photos/seed/carrot/200", CategoryID: "cat1"},
	{ID: "prod4", Name: "Milk", Description: "Full Cream Cow Milk", Price: decimal.NewFromInt(28), Weight: "500ml", ImageURL: "https://picsum.photos/seed/milk/200", CategoryID: "cat2"},
	{ID: "prod5", Name: "Brown Bread", Description: "Whole Wheat Bread", Price: decimal.NewFromInt(45), Weight: "400g", ImageURL: "https://picsum.photos/seed/bread/200", CategoryID: "cat2"},
	{ID: "prod6", Name: "Cheese Slices", Description: "Amul Cheese Slices", Price: decimal.NewFromInt(110), Weight: "100g", ImageURL: "https://picsum.photos/seed/cheese/200", CategoryID: "cat2"},
	{ID: "prod7", Name: "Potato Chips", Description: "Classic Salted Chips", Price: decimal.NewFromInt(20), Weight: "52g", ImageURL: "https://picsum.photos/seed/chips/200", CategoryID: "cat3"},
	{ID: "prod8", Name: "Chocolate Cookies", Description: "Dark Fantasy Choco Fills", Price: decimal.NewFromInt(35), Weight: "75g", ImageURL: "https://picsum.photos/seed/cookies/200", CategoryID: "cat3"},
	{ID: "prod9", Name: "Cola", Description: "Chilled Coca-Cola Can", Price: decimal.NewFromInt(40), Weight: "300ml", ImageURL: "https://picsum.photos/seed/cola/200", CategoryID: "cat4"},
	{ID: "prod10", Name: "Orange Juice", Description: "Tropicana Orange Juice", Price: decimal.NewFromInt(125), Weight: "1L", ImageURL: "https://picsum.photos/seed/juice/200", CategoryID: "cat4"},
}

func productsIn(categories ...string) []catalog.Item {
	var out []catalog.Item
	for _, item := range seedProducts {
		for _, category := range categories {
			if item.CategoryID == category {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// SeedVendors returns the catalog a fresh directory starts with.
func SeedVendors() []Vendor {
	return []Vendor{
		{
			ID:             "ret1",
			Name:           "Shyam Super Bazzar",
			Rating:         4.5,
			ImageURL:       "https://picsum.photos/seed/store1/400/200",
			Products:       productsIn("cat1", "cat2", "cat4"),
			MobileNo:       "9876543210",
			Email:          "shyam.bazzar@example.com",
			OperatingHours: "8 AM - 10 PM",
			Description:    "Your friendly neighborhood store for all daily needs. We stock fresh produce, dairy, and a wide variety of snacks.",
			Status:         enums.VendorStatusActive,
			AccountNo:      "12345678901",
			IFSCCode:       "SBIN0001234",
			BankName:       "State Bank of India",
		},
		{
			ID:             "ret2",
			Name:           "AG MART",
			Rating:         4.7,
			ImageURL:       "https://picsum.photos/seed/store2/400/200",
			Products:       catalog.CloneItems(seedProducts),
			MobileNo:       "9876543211",
			Email:          "ag.mart@example.com",
			OperatingHours: "24/7",
			Description:    "The one-stop supermarket for all your needs. From exotic imports to local favorites, we have it all, available 24/7.",
			Status:         enums.VendorStatusActive,
			AccountNo:      "12345678902",
			IFSCCode:       "HDFC0005678",
			BankName:       "HDFC Bank",
		},
		{
			ID:             "ret3",
			Name:           "Sanjivini Stores",
			Rating:         4.8,
			ImageURL:       "https://picsum.photos/seed/store3/400/200",
			Products:       productsIn("cat2", "cat3", "cat6", "cat7"),
			MobileNo:       "9876543212",
			Email:          "sanjivini@example.com",
			OperatingHours: "9 AM - 9 PM",
			Description:    "Specializing in organic products and health foods. Your destination for a healthy lifestyle.",
			Status:         enums.VendorStatusActive,
			AccountNo:      "12345678903",
			IFSCCode:       "ICIC0009101",
			BankName:       "ICICI Bank",
		},
	}
}
