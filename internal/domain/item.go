package domain

// Item is one product row of the feed.
type Item struct {
	ID                    string
	Title                 string
	Description           string
	Link                  string
	ImageLink             string
	Price                 string
	Availability          string
	Condition             string
	Brand                 string
	FBProductCategory     string
	GoogleProductCategory string
}

// Defaults are the constant values applied to every extracted item.
type Defaults struct {
	Availability string `mapstructure:"availability"`
	Condition    string `mapstructure:"condition"`
	Brand        string `mapstructure:"brand"`
}

// Field returns the value for a feed column. Columns the item does not
// populate come back empty.
func (i Item) Field(column string) string {
	switch column {
	case "id":
		return i.ID
	case "title":
		return i.Title
	case "description":
		return i.Description
	case "link":
		return i.Link
	case "image_link":
		return i.ImageLink
	case "price":
		return i.Price
	case "availability":
		return i.Availability
	case "condition":
		return i.Condition
	case "brand":
		return i.Brand
	case "fb_product_category":
		return i.FBProductCategory
	case "google_product_category":
		return i.GoogleProductCategory
	default:
		return ""
	}
}

// SetCategory assigns the same category to both feed category fields.
func (i *Item) SetCategory(category string) {
	i.FBProductCategory = category
	i.GoogleProductCategory = category
}
