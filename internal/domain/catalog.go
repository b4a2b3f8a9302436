package domain

// AccrualMode decides how a pen pays out. A kind accrues through exactly one
// mode; calling the other verb on its pen fails with ErrWrongState so the
// two paths can never double-pay.
type AccrualMode string

const (
	// AccrualFeed converts feed stock into product immediately on feeding.
	AccrualFeed AccrualMode = "feed"
	// AccrualTimed accrues product over time and pays on collection.
	AccrualTimed AccrualMode = "timed"
)

// CropKind describes a plantable crop: seed cost, and units credited to the
// pantry per recurring harvest.
type CropKind struct {
	Type  string
	Cost  int
	Yield int
}

// TreeKind describes an orchard tree. Trees behave like crops with a
// bigger upfront cost and yield.
type TreeKind struct {
	Type  string
	Cost  int
	Yield int
}

// AnimalKind describes a pen animal: purchase cost, the product it makes,
// the feed it consumes, the feed-to-product ratio, the pen capacity, and
// which accrual mode governs it.
type AnimalKind struct {
	Type           string
	Cost           int
	Product        string
	FeedType       string
	FeedPerProduct int
	MaxPerPen      int
	Mode           AccrualMode
}

// Catalog is the game balance sheet: every known kind with its economics.
// Values are seeded from defaults and may be overridden by configuration at
// startup; the transaction functions treat the catalog as read-only.
type Catalog struct {
	Crops       map[string]CropKind
	Trees       map[string]TreeKind
	Animals     map[string]AnimalKind
	BuybackRate map[string]int // system buyback price per pantry item kind
}

// DefaultCatalog returns the stock balance sheet.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Crops: map[string]CropKind{
			"wheat":     {Type: "wheat", Cost: 3, Yield: 1},
			"carrot":    {Type: "carrot", Cost: 4, Yield: 1},
			"sunflower": {Type: "sunflower", Cost: 5, Yield: 1},
			"potato":    {Type: "potato", Cost: 4, Yield: 1},
			"clover":    {Type: "clover", Cost: 2, Yield: 1},
		},
		Trees: map[string]TreeKind{
			"apple": {Type: "apple", Cost: 8, Yield: 3},
		},
		Animals: map[string]AnimalKind{
			"cow": {
				Type: "cow", Cost: 25, Product: "milk",
				FeedType: "clover", FeedPerProduct: 3,
				MaxPerPen: 3, Mode: AccrualFeed,
			},
			"chicken": {
				Type: "chicken", Cost: 15, Product: "eggs",
				FeedType: "wheat", FeedPerProduct: 1,
				MaxPerPen: 10, Mode: AccrualTimed,
			},
		},
		BuybackRate: map[string]int{
			"wheat":     2,
			"carrot":    3,
			"sunflower": 4,
			"potato":    3,
			"clover":    1,
			"apple":     4,
			"milk":      5,
			"eggs":      3,
		},
	}
}

// Crop looks up a crop kind.
func (c *Catalog) Crop(kind string) (CropKind, bool) {
	k, ok := c.Crops[kind]
	return k, ok
}

// Tree looks up a tree kind.
func (c *Catalog) Tree(kind string) (TreeKind, bool) {
	k, ok := c.Trees[kind]
	return k, ok
}

// Animal looks up an animal kind.
func (c *Catalog) Animal(kind string) (AnimalKind, bool) {
	k, ok := c.Animals[kind]
	return k, ok
}

// KnownKind reports whether any table in the catalog lists the kind. Pantry
// item kinds are covered through the buyback table.
func (c *Catalog) KnownKind(kind string) bool {
	if _, ok := c.Crops[kind]; ok {
		return true
	}
	if _, ok := c.Trees[kind]; ok {
		return true
	}
	if _, ok := c.Animals[kind]; ok {
		return true
	}
	_, ok := c.BuybackRate[kind]
	return ok
}

// Buyback returns the server-authoritative system sale price for an item
// kind. Items without a listed price cannot be sold to the system.
func (c *Catalog) Buyback(itemType string) (int, bool) {
	p, ok := c.BuybackRate[itemType]
	return p, ok
}
