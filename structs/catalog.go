package structs

// CategoryIcon is a symbolic name drawn from the storefront's closed icon set.
type CategoryIcon string

const (
	IconSmartphone CategoryIcon = "smartphone"
	IconCoffee     CategoryIcon = "coffee"
	IconTV         CategoryIcon = "tv"
	IconLaptop     CategoryIcon = "laptop"
	IconMusic      CategoryIcon = "music"
	IconWatch      CategoryIcon = "watch"
	IconCamera     CategoryIcon = "camera"
	IconHeadphones CategoryIcon = "headphones"
	IconGamepad    CategoryIcon = "gamepad"
	IconTablet     CategoryIcon = "tablet"
)

// Valid reports whether the icon belongs to the closed set.
func (i CategoryIcon) Valid() bool {
	switch i {
	case IconSmartphone, IconCoffee, IconTV, IconLaptop, IconMusic,
		IconWatch, IconCamera, IconHeadphones, IconGamepad, IconTablet:
		return true
	}
	return false
}

// Variant is a purchasable configuration of a product with its own
// price, stock and images. A variant with zero stock stays visible in
// the catalog but is unavailable for interaction.
type Variant struct {
	ID         string            `json:"id"`
	Name       string            `json:"name" validate:"required"` // e.g. "Titanium Blue - 256GB"
	Attributes map[string]string `json:"attributes,omitempty"`     // color, capacity, ram, ...
	Price      uint64            `json:"price"`                    // stored in cents
	Stock      int               `json:"stock" validate:"gte=0"`
	Images     []string          `json:"images,omitempty"`
}

type Product struct {
	ID          int64     `json:"id"` // 0 means new/unsaved
	Name        string    `json:"name" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Price       uint64    `json:"price"` // stored in cents, internal reference price
	Image       string    `json:"image"` // URL or encoded image string
	Description string    `json:"description"`
	Features    []string  `json:"features,omitempty"`
	IsNew       bool      `json:"is_new,omitempty"`
	IsActive    bool      `json:"is_active"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Variants    []Variant `json:"variants,omitempty" validate:"dive"`
}

type Category struct {
	ID   string       `json:"id" validate:"required"`
	Name string       `json:"name" validate:"required"`
	Icon CategoryIcon `json:"icon"`
}

type HeaderSlide struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"cta_text"`
	CTALink  string `json:"cta_link"` // target anchor, e.g. "#productos"
}

// AppConfig is the singleton configuration document for the storefront.
// It is read-modified-written as a whole on every admin save.
type AppConfig struct {
	WhatsappNumber string        `json:"whatsapp_number"`
	InstagramURL   string        `json:"instagram_url"`
	FacebookURL    string        `json:"facebook_url"`
	TwitterURL     string        `json:"twitter_url"`
	LinkedinURL    string        `json:"linkedin_url"`
	Email          string        `json:"email"`
	Address        string        `json:"address"`
	PhoneDisplay   string        `json:"phone_display"`
	GeneralInfo    string        `json:"general_info,omitempty"`
	FooterText     string        `json:"footer_text,omitempty"`
	HeaderSlides   []HeaderSlide `json:"header_slides"`
	Categories     []Category    `json:"categories"`
}
