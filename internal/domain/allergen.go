package domain

// Allergen is one of the 14 major food allergens defined by food safety
// regulations. All food stock should be labelled with applicable allergens.
type Allergen string

const (
	AllergenCelery      Allergen = "CELERY"
	AllergenGluten      Allergen = "GLUTEN"
	AllergenCrustaceans Allergen = "CRUSTACEANS"
	AllergenEggs        Allergen = "EGGS"
	AllergenFish        Allergen = "FISH"
	AllergenLupin       Allergen = "LUPIN"
	AllergenMilk        Allergen = "MILK"
	AllergenMolluscs    Allergen = "MOLLUSCS"
	AllergenMustard     Allergen = "MUSTARD"
	AllergenTreeNuts    Allergen = "TREE_NUTS"
	AllergenPeanuts     Allergen = "PEANUTS"
	AllergenSesame      Allergen = "SESAME"
	AllergenSoybeans    Allergen = "SOYBEANS"
	AllergenSulphites   Allergen = "SULPHITES"
)
