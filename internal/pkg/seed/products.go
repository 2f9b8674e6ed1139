package seed

import (
	"log"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
)

// Products fills the add-on shop when the table is empty, so a fresh
// environment has something to sell. Prices are whole naira.
func Products(db *gorm.DB) {
	repo := repository.NewProductRepository(db)
	count, err := repo.Count()
	if err != nil {
		log.Printf("product seed skipped: %v", err)
		return
	}
	if count > 0 {
		return
	}

	items := []models.Product{
		{Name: "Chicken breast", Description: "Fresh boneless chicken breast", Category: models.CategoryProteins, Price: 4500, Unit: "kg", InStock: true, Popular: true},
		{Name: "Fresh catfish", Description: "Live catfish, cleaned on request", Category: models.CategoryProteins, Price: 3800, Unit: "kg", InStock: true},
		{Name: "Beef cuts", Description: "Lean boneless beef", Category: models.CategoryProteins, Price: 5200, Unit: "kg", InStock: true},
		{Name: "Eggs", Description: "Farm fresh eggs", Category: models.CategoryProteins, Price: 4200, Unit: "crate", InStock: true, Popular: true},
		{Name: "Ugwu leaves", Description: "Fresh fluted pumpkin leaves", Category: models.CategoryVegetables, Price: 800, Unit: "bunch", InStock: true, Popular: true},
		{Name: "Spinach", Description: "Green leafy spinach", Category: models.CategoryVegetables, Price: 700, Unit: "bunch", InStock: true},
		{Name: "Tomatoes", Description: "Ripe plum tomatoes", Category: models.CategoryVegetables, Price: 2500, Unit: "basket", InStock: true},
		{Name: "Bell peppers", Description: "Tatashe and green peppers mix", Category: models.CategoryVegetables, Price: 1800, Unit: "kg", InStock: true},
		{Name: "Onions", Description: "Red onions", Category: models.CategoryVegetables, Price: 1500, Unit: "kg", InStock: true},
		{Name: "Bananas", Description: "Sweet ripe bananas", Category: models.CategoryFruits, Price: 1200, Unit: "bunch", InStock: true},
		{Name: "Pineapple", Description: "Whole sweet pineapple", Category: models.CategoryFruits, Price: 1500, Unit: "piece", InStock: true},
		{Name: "Watermelon", Description: "Large seedless watermelon", Category: models.CategoryFruits, Price: 2000, Unit: "piece", InStock: true},
		{Name: "Oranges", Description: "Juicy sweet oranges", Category: models.CategoryFruits, Price: 1000, Unit: "dozen", InStock: true},
		{Name: "Rice", Description: "Premium long grain parboiled rice", Category: models.CategoryGrains, Price: 6500, Unit: "5kg bag", InStock: true, Popular: true},
		{Name: "Beans", Description: "Honey beans (oloyin)", Category: models.CategoryGrains, Price: 4800, Unit: "5kg bag", InStock: true},
		{Name: "Garri", Description: "Ijebu garri", Category: models.CategoryGrains, Price: 2800, Unit: "5kg bag", InStock: true},
		{Name: "Semovita", Description: "Wheat semolina", Category: models.CategoryGrains, Price: 3500, Unit: "5kg bag", InStock: true},
		{Name: "Fresh milk", Description: "Pasteurized whole milk", Category: models.CategoryDairy, Price: 1800, Unit: "litre", InStock: true},
		{Name: "Yoghurt", Description: "Plain unsweetened yoghurt", Category: models.CategoryDairy, Price: 1500, Unit: "litre", InStock: true},
		{Name: "Butter", Description: "Unsalted dairy butter", Category: models.CategoryDairy, Price: 2200, Unit: "250g", InStock: true},
		{Name: "Palm oil", Description: "Undiluted red palm oil", Category: models.CategorySpices, Price: 3200, Unit: "litre", InStock: true},
		{Name: "Groundnut oil", Description: "Pure groundnut oil", Category: models.CategorySpices, Price: 3800, Unit: "litre", InStock: true},
		{Name: "Pepper mix", Description: "Blended ata rodo and tatashe", Category: models.CategorySpices, Price: 1200, Unit: "500ml", InStock: true},
		{Name: "Crayfish", Description: "Ground dried crayfish", Category: models.CategorySpices, Price: 2500, Unit: "500g", InStock: true},
		{Name: "Zobo leaves", Description: "Dried hibiscus for zobo", Category: models.CategoryBeverages, Price: 900, Unit: "500g", InStock: true},
		{Name: "Fresh orange juice", Description: "Cold-pressed, no added sugar", Category: models.CategoryBeverages, Price: 2000, Unit: "litre", InStock: true},
	}

	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			log.Printf("product seed failed at %q: %v", items[i].Name, err)
			return
		}
	}
	log.Printf("seeded %d add-on products", len(items))
}
