package domain

// CategoryRule maps a lowercase title keyword to a product category path.
type CategoryRule struct {
	Keyword  string `mapstructure:"keyword"`
	Category string `mapstructure:"category"`
}

// CategoryMap is evaluated in order; the first matching keyword wins.
type CategoryMap []CategoryRule

// DefaultCategoryMap returns the built-in Estonian keyword table.
func DefaultCategoryMap() CategoryMap {
	return CategoryMap{
		{Keyword: "kimono", Category: "Apparel & Accessories > Clothing > Kimonos"},
		{Keyword: "mantel", Category: "Apparel & Accessories > Clothing > Coats"},
		{Keyword: "bomberjakk", Category: "Apparel & Accessories > Clothing > Coats"},
		{Keyword: "hommikumantel", Category: "Apparel & Accessories > Clothing > Bathrobes"},
		{Keyword: "rätik", Category: "Home & Garden > Linens & Bedding > Towels"},
		{Keyword: "kõrvarõngad", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "kinkekaart", Category: "Media > Gifts & Cards > Gift Cards"},
		{Keyword: "patsikumm", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "öömask", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "retuusid", Category: "Apparel & Accessories > Clothing > Tights"},
		{Keyword: "pullover", Category: "Apparel & Accessories > Clothing > Sweaters"},
		{Keyword: "torusall", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "kosmeetikakott", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "müts", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "sall", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "bag", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "kaisukas", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "kleit", Category: "Apparel & Accessories > Clothing > Dresses"},
		{Keyword: "seelik", Category: "Apparel & Accessories > Clothing > Skirts"},
		{Keyword: "pusa", Category: "Apparel & Accessories > Clothing > Shirts & Tops"},
		{Keyword: "kampsun", Category: "Apparel & Accessories > Clothing > Sweaters"},
		{Keyword: "püksid", Category: "Apparel & Accessories > Clothing > Pants"},
		{Keyword: "jakid", Category: "Apparel & Accessories > Clothing > Outerwear"},
		{Keyword: "särk", Category: "Apparel & Accessories > Clothing > Shirts & Tops"},
		{Keyword: "pluus", Category: "Apparel & Accessories > Clothing > Shirts & Tops"},
		{Keyword: "aksessuaar", Category: "Apparel & Accessories > Accessories"},
		{Keyword: "ehe", Category: "Apparel & Accessories > Jewelry"},
	}
}
