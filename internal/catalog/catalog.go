package catalog

// Product is a single catalog entry. Prices are stored in minor units
// (USD cents). The catalog is seeded at startup and never mutated.
type Product struct {
	ID          int64
	Name        string
	Description string
	// Detail is the long-form copy shown on the product page. It may be
	// empty, in which case the short description is used.
	Detail     string
	PriceCents int64
	ImageURL   string
}

// DetailText returns the long-form description, falling back to the
// short one when no detail copy exists.
func (p Product) DetailText() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Description
}

var products = []Product{
	{
		ID:          1,
		Name:        "The Transformer Table",
		Description: "A coffee table that elegantly rises and transforms into a full-sized dining or work table at the touch of a button.",
		Detail:      "Dual linear actuators lift the walnut top from lounge height to dining height in under eight seconds, with a leaf mechanism that doubles the surface area. Presets for coffee, desk, and dining modes are stored on the table itself, so no app is required for everyday use.",
		PriceCents:  129999,
		ImageURL:    "https://images.unsplash.com/photo-1593697821252-8c78577033a2?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          2,
		Name:        "The Ascend Desk",
		Description: "A sleek, minimalist standing desk with programmable height presets and whisper-quiet dual motors for a seamless transition.",
		Detail:      "Four programmable height presets, anti-collision sensing, and a cable tray that travels with the top. The dual-motor column pair stays under 40 dB even under full load, so mid-meeting adjustments go unnoticed.",
		PriceCents:  89999,
		ImageURL:    "https://images.unsplash.com/photo-1558959846-6d38a3791523?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          3,
		Name:        "The Hideaway Bed",
		Description: "Maximize your space with our smart bed frame featuring automated under-bed storage accessible via remote control.",
		Detail:      "The platform rises on gas-assisted struts driven by a single quiet motor, exposing a full-depth storage bay. A child-lock mode and obstruction sensors keep the mechanism safe, and the remote pairs with most smart-home hubs.",
		PriceCents:  189999,
		ImageURL:    "https://images.unsplash.com/photo-1505693416388-ac5ce0687954?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          4,
		Name:        "The Organizer Shelf",
		Description: "Motorized, adjustable shelving that can be reconfigured on the fly to fit your storage needs. Perfect for any room.",
		Detail:      "Each shelf rides on an independent belt drive and can be repositioned in 25 mm steps from the wall panel or the app. Load sensing stops a shelf before it meets an obstacle, and layouts can be saved and recalled per room.",
		PriceCents:  75000,
		ImageURL:    "https://images.unsplash.com/photo-1616486793233-96b42b6d3711?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          5,
		Name:        "The Guardian Cabinet",
		Description: "A stylish security cabinet with smart lock technology, perfect for keeping valuables safe. Controllable from your smartphone.",
		Detail:      "A steel inner shell hides behind oak veneer, secured by a motorized deadbolt with fingerprint and app unlock. Tamper events and access history are logged locally, and a physical override key ships in a separate sealed envelope.",
		PriceCents:  115000,
		ImageURL:    "https://images.unsplash.com/photo-1598300188929-84b5242d547b?auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          6,
		Name:        "The Lumina Side Table",
		Description: "A bedside table with integrated, app-controlled ambient lighting and wireless charging for all your devices.",
		Detail:      "An edge-lit ring under the tabletop supports tunable white and full-color scenes, scheduled or triggered by the room's other Kenpro pieces. The 15 W charging pad sits flush in the surface with a leather-touch finish.",
		PriceCents:  49950,
		ImageURL:    "https://images.unsplash.com/photo-1618220252344-88b9a186494d?auto=format&fit=crop&w=800&q=80",
	},
}

// All returns the full catalog in display order. Callers receive a copy
// and may reorder it freely.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ByID looks up a product by its identifier.
func ByID(id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Featured returns up to n products for the home page highlight strip.
func Featured(n int) []Product {
	all := All()
	if n < len(all) {
		all = all[:n]
	}
	return all
}
