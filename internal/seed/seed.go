package seed

import (
	"context"
	"fmt"

	"stock-system/internal/domain"
	"stock-system/internal/repository"
)

// Run loads the demo venue: bar and kitchen stock, a bar menu, a food
// menu, and a starting staff roster. Saving through the repositories
// keeps the data identical whether the target is Postgres or memory.
func Run(ctx context.Context, repo *repository.Repository) error {
	stock, err := seedStock(ctx, repo.Stock)
	if err != nil {
		return err
	}
	if err := seedMenus(ctx, repo.Menu, stock); err != nil {
		return err
	}
	return seedStaff(ctx, repo.Staff)
}

type stockEntry struct {
	key       string
	name      string
	category  domain.StockCategory
	quantity  domain.Quantity
	threshold *domain.Quantity
	allergens []domain.Allergen
}

func seedStock(ctx context.Context, repo repository.StockRepositoryInterface) (map[string]*domain.StockItem, error) {
	five := domain.MustQuantity(5, domain.UnitLiters)
	twenty := domain.MustQuantity(20, domain.UnitBottles)

	entries := []stockEntry{
		{key: "gin", name: "Tanqueray Gin", category: domain.CategorySpirits,
			quantity: domain.MustQuantity(10, domain.UnitLiters), threshold: &five},
		{key: "vodka", name: "Absolut Vodka", category: domain.CategorySpirits,
			quantity: domain.MustQuantity(10, domain.UnitLiters), threshold: &five},
		{key: "rum", name: "Captain Morgan Rum", category: domain.CategorySpirits,
			quantity: domain.MustQuantity(10, domain.UnitLiters)},
		{key: "tonic", name: "Fever Tree Tonic", category: domain.CategoryMixers,
			quantity: domain.MustQuantity(100, domain.UnitLiters)},
		{key: "cola", name: "Coca Cola", category: domain.CategoryMixers,
			quantity: domain.MustQuantity(100, domain.UnitLiters)},
		{key: "lager", name: "Peroni Nastro Azzurro", category: domain.CategoryBeer,
			quantity: domain.MustQuantity(200, domain.UnitBottles), threshold: &twenty,
			allergens: []domain.Allergen{domain.AllergenGluten}},
		{key: "cider", name: "Aspall Cyder", category: domain.CategoryBeer,
			quantity:  domain.MustQuantity(100, domain.UnitBottles),
			allergens: []domain.Allergen{domain.AllergenSulphites}},
		{key: "prosecco", name: "House Prosecco", category: domain.CategoryWine,
			quantity:  domain.MustQuantity(50, domain.UnitBottles),
			allergens: []domain.Allergen{domain.AllergenSulphites}},
		{key: "cod", name: "Cod Fillet", category: domain.CategoryProteins,
			quantity:  domain.MustQuantity(15, domain.UnitKilograms),
			allergens: []domain.Allergen{domain.AllergenFish}},
		{key: "potatoes", name: "Maris Piper Potatoes", category: domain.CategoryVegetables,
			quantity: domain.MustQuantity(40, domain.UnitKilograms)},
		{key: "flour", name: "Plain Flour", category: domain.CategoryDryGoods,
			quantity:  domain.MustQuantity(25, domain.UnitKilograms),
			allergens: []domain.Allergen{domain.AllergenGluten}},
		{key: "butter", name: "Salted Butter", category: domain.CategoryDairy,
			quantity:  domain.MustQuantity(10, domain.UnitKilograms),
			allergens: []domain.Allergen{domain.AllergenMilk}},
	}

	items := make(map[string]*domain.StockItem, len(entries))
	for _, entry := range entries {
		var threshold *domain.LowStockThreshold
		if entry.threshold != nil {
			t := domain.NewLowStockThreshold(*entry.threshold)
			threshold = &t
		}
		item, err := domain.NewStockItem(domain.NewStockItemID(), entry.name, entry.category,
			entry.quantity, threshold, entry.allergens...)
		if err != nil {
			return nil, fmt.Errorf("seed stock item %q: %w", entry.name, err)
		}
		if _, err := repo.Save(ctx, item); err != nil {
			return nil, fmt.Errorf("save stock item %q: %w", entry.name, err)
		}
		items[entry.key] = item
	}
	return items, nil
}

func seedMenus(ctx context.Context, repo repository.MenuRepositoryInterface, stock map[string]*domain.StockItem) error {
	stockByID := make(map[domain.StockItemID]*domain.StockItem, len(stock))
	for _, item := range stock {
		stockByID[item.ID()] = item
	}

	barItems := []*domain.MenuItem{
		mustMenuItem("Gin & Tonic", "Tanqueray with Fever Tree", 3.50, []domain.MenuItemIngredient{
			mustIngredient(stock["gin"], domain.MustQuantity(0.05, domain.UnitLiters)),
			mustIngredient(stock["tonic"], domain.MustQuantity(0.2, domain.UnitLiters)),
		}),
		mustMenuItem("Tonic Water", "On its own, over ice", 1.00, []domain.MenuItemIngredient{
			mustIngredient(stock["tonic"], domain.MustQuantity(0.2, domain.UnitLiters)),
		}),
		mustMenuItem("Lager", "330ml bottle", 4.20, []domain.MenuItemIngredient{
			mustIngredient(stock["lager"], domain.MustQuantity(1, domain.UnitBottles)),
		}),
		mustMenuItem("Prosecco", "125ml glass", 5.50, []domain.MenuItemIngredient{
			mustIngredient(stock["prosecco"], domain.MustQuantity(0.17, domain.UnitBottles)),
		}),
	}
	barMenu, err := domain.NewMenu(domain.NewMenuID(), "Bar Menu", "Drinks and serves", domain.MenuTypeBar, barItems, true)
	if err != nil {
		return err
	}
	barMenu.RefreshAllAllergens(stockByID)
	if _, err := repo.Save(ctx, barMenu); err != nil {
		return fmt.Errorf("save bar menu: %w", err)
	}

	foodItems := []*domain.MenuItem{
		mustMenuItem("Fish & Chips", "Beer battered cod, triple cooked chips", 8.50, []domain.MenuItemIngredient{
			mustIngredient(stock["cod"], domain.MustQuantity(0.18, domain.UnitKilograms)),
			mustIngredient(stock["potatoes"], domain.MustQuantity(0.3, domain.UnitKilograms)),
			mustIngredient(stock["flour"], domain.MustQuantity(0.1, domain.UnitKilograms)),
		}),
		mustMenuItem("Buttered New Potatoes", "Side", 3.00, []domain.MenuItemIngredient{
			mustIngredient(stock["potatoes"], domain.MustQuantity(0.2, domain.UnitKilograms)),
			mustIngredient(stock["butter"], domain.MustQuantity(0.02, domain.UnitKilograms)),
		}),
	}
	foodMenu, err := domain.NewMenu(domain.NewMenuID(), "Food Menu", "Kitchen classics", domain.MenuTypeFood, foodItems, true)
	if err != nil {
		return err
	}
	foodMenu.RefreshAllAllergens(stockByID)
	if _, err := repo.Save(ctx, foodMenu); err != nil {
		return fmt.Errorf("save food menu: %w", err)
	}
	return nil
}

func seedStaff(ctx context.Context, repo repository.StaffRepositoryInterface) error {
	roster := []*domain.Staff{
		domain.NewStaff(domain.NewStaffID(), mustStaffName("Rosa", "Marchetti"), domain.ManagerRole()),
		domain.NewStaff(domain.NewStaffID(), mustStaffName("Tom", "Barker"), domain.WorkerRole(domain.LocationBar)),
		domain.NewStaff(domain.NewStaffID(), mustStaffName("Amira", "Hassan"), domain.WorkerRole(domain.LocationKitchen)),
	}
	for _, member := range roster {
		if _, err := repo.Save(ctx, member); err != nil {
			return fmt.Errorf("save staff %q: %w", member.Name().FullName(), err)
		}
	}
	return nil
}

func mustMenuItem(name, description string, price float64, ingredients []domain.MenuItemIngredient) *domain.MenuItem {
	item, err := domain.NewMenuItem(domain.NewMenuItemID(), name, description,
		domain.MustPrice(price, domain.GBP), ingredients, true)
	if err != nil {
		panic(err)
	}
	return item
}

func mustIngredient(item *domain.StockItem, perServing domain.Quantity) domain.MenuItemIngredient {
	ing, err := domain.NewMenuItemIngredient(item.ID(), perServing)
	if err != nil {
		panic(err)
	}
	return ing
}

func mustStaffName(first, last string) domain.StaffName {
	name, err := domain.NewStaffName(first, last)
	if err != nil {
		panic(err)
	}
	return name
}
