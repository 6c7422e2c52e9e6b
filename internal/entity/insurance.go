package entity

// InsuranceType is one of the products the agency quotes.
type InsuranceType string

const (
	InsuranceAuto     InsuranceType = "auto"
	InsuranceHome     InsuranceType = "home"
	InsuranceRenters  InsuranceType = "renters"
	InsuranceLife     InsuranceType = "life"
	InsuranceBoat     InsuranceType = "boat"
	InsuranceFlood    InsuranceType = "flood"
	InsuranceBusiness InsuranceType = "business"
	InsuranceLandlord InsuranceType = "landlord"
	InsuranceBonds    InsuranceType = "bonds"
)

// Segment groups products the way the site navigation does.
type Segment string

const (
	SegmentPersonal Segment = "personal"
	SegmentBusiness Segment = "business"
)

// Icon is a closed set of pictograms. Front-ends map each value to whatever
// they can draw; there is no name based lookup.
type Icon int

const (
	IconCar Icon = iota + 1
	IconHome
	IconKey
	IconHeart
	IconAnchor
	IconDroplets
	IconBuilding
	IconUsers
	IconFileCheck
)

var iconNames = map[Icon]string{
	IconCar:       "car",
	IconHome:      "home",
	IconKey:       "key",
	IconHeart:     "heart",
	IconAnchor:    "anchor",
	IconDroplets:  "droplets",
	IconBuilding:  "building",
	IconUsers:     "users",
	IconFileCheck: "file-check",
}

func (i Icon) String() string {
	if n, ok := iconNames[i]; ok {
		return n
	}
	return "unknown"
}

func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// VariantGroup names the product specific field set collected in step 3.
type VariantGroup int

const (
	VariantNone VariantGroup = iota
	VariantVehicle
	VariantProperty
	VariantBusiness
)

// Product is one entry of the quote catalog.
type Product struct {
	Type    InsuranceType `json:"id"`
	Label   string        `json:"label"`
	Segment Segment       `json:"segment"`
	Icon    Icon          `json:"icon"`
	Variant VariantGroup  `json:"-"`
}

var catalog = []Product{
	{InsuranceAuto, "Auto Insurance", SegmentPersonal, IconCar, VariantVehicle},
	{InsuranceHome, "Home Insurance", SegmentPersonal, IconHome, VariantProperty},
	{InsuranceRenters, "Renters Insurance", SegmentPersonal, IconKey, VariantProperty},
	{InsuranceLife, "Life Insurance", SegmentPersonal, IconHeart, VariantNone},
	{InsuranceBoat, "Boat Insurance", SegmentPersonal, IconAnchor, VariantNone},
	{InsuranceFlood, "Flood Insurance", SegmentPersonal, IconDroplets, VariantNone},
	{InsuranceBusiness, "Business Insurance", SegmentBusiness, IconBuilding, VariantBusiness},
	{InsuranceLandlord, "Landlord Insurance", SegmentBusiness, IconUsers, VariantBusiness},
	{InsuranceBonds, "Surety Bonds", SegmentBusiness, IconFileCheck, VariantNone},
}

// Catalog returns the products in display order.
func Catalog() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}

// LookupProduct finds a product by its wire id.
func LookupProduct(id string) (Product, bool) {
	for _, p := range catalog {
		if string(p.Type) == id {
			return p, true
		}
	}
	return Product{}, false
}

// VariantFor returns the step 3 field group for an insurance type. Unknown or
// empty types have no product specific fields.
func VariantFor(id string) VariantGroup {
	p, ok := LookupProduct(id)
	if !ok {
		return VariantNone
	}
	return p.Variant
}
