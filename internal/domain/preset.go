package domain

import "fmt"

// DescriptionMode controls how the description column is filled.
type DescriptionMode string

func (m DescriptionMode) String() string {
	return string(m)
}

const (
	DescriptionMirror DescriptionMode = "mirror" // copy of the title
	DescriptionEmpty  DescriptionMode = "empty"  // always blank
)

// Valid reports whether m is a known description mode.
func (m DescriptionMode) Valid() bool {
	return m == DescriptionMirror || m == DescriptionEmpty
}

// Preset is a named column layout together with its description policy.
type Preset struct {
	Name            string
	Columns         []string
	DescriptionMode DescriptionMode
}

const (
	PresetMerchant = "merchant"
	PresetCatalog  = "catalog"
)

var merchantColumns = []string{
	"id", "title", "description", "availability", "condition", "price",
	"link", "image_link", "brand", "product_type", "age_group", "color",
	"gender", "item_group_id", "pattern", "size", "shipping",
	"shipping_weight", "custom_label_0", "custom_label_1",
	"custom_label_2", "custom_label_3", "custom_label_4",
	"google_product_category", "fb_product_category", "product_tags[0]",
	"additional_image_link",
}

var catalogColumns = []string{
	"id", "title", "description", "availability", "condition", "price",
	"link", "image_link", "brand", "google_product_category",
	"fb_product_category", "quantity_to_sell_on_facebook", "sale_price",
	"sale_price_effective_date", "item_group_id", "gender", "color", "size",
	"age_group", "material", "pattern", "shipping", "shipping_weight",
}

// LookupPreset returns a copy of the named preset.
func LookupPreset(name string) (Preset, error) {
	switch name {
	case PresetMerchant:
		return Preset{
			Name:            PresetMerchant,
			Columns:         append([]string(nil), merchantColumns...),
			DescriptionMode: DescriptionMirror,
		}, nil
	case PresetCatalog:
		return Preset{
			Name:            PresetCatalog,
			Columns:         append([]string(nil), catalogColumns...),
			DescriptionMode: DescriptionEmpty,
		}, nil
	default:
		return Preset{}, fmt.Errorf("unknown feed preset %q (want %q or %q)", name, PresetMerchant, PresetCatalog)
	}
}
