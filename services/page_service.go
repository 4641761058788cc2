package services

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"bayka/models"
	"bayka/reveal"
	"bayka/theme"
)

const brandName = "Bayka"

type contentStore interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListFaqs(ctx context.Context, section string) ([]models.Faq, error)
	Subscribe(ctx context.Context, email string) (bool, error)
}

type catalogLister interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (*CatalogResult, error)
}

type blogLister interface {
	ListPosts(ctx context.Context, limit int) ([]BlogCard, error)
}

type detailLoader interface {
	GetDetail(ctx context.Context, id int64, variant string, quantity int) (*ProductDetail, error)
}

type ThemeTokens struct {
	Radius       string `json:"radius"`
	CappedRadius string `json:"capped_radius"`
	Background   string `json:"background,omitempty"`
}

type NavItem struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

type Navbar struct {
	BrandName string    `json:"brand_name"`
	NavItems  []NavItem `json:"nav_items"`
	Button    Link      `json:"button"`
}

type Section struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Entrance reveal.Entrance `json:"entrance"`
	Data     interface{}     `json:"data"`
}

type Page struct {
	Theme    theme.Config `json:"theme"`
	Tokens   ThemeTokens  `json:"tokens"`
	Navbar   Navbar       `json:"navbar"`
	Sections []Section    `json:"sections"`
}

type Stat struct {
	Title       string `json:"title"`
	Values      []int  `json:"values"`
	Description string `json:"description"`
}

type HeroData struct {
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Buttons     []Link `json:"buttons"`
	ImageSrc    string `json:"image_src"`
	ImageAlt    string `json:"image_alt"`
	Stats       []Stat `json:"stats"`
}

type AboutData struct {
	Tag          string `json:"tag"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageSrc     string `json:"image_src"`
	ImageAlt     string `json:"image_alt"`
	Buttons      []Link `json:"buttons"`
	InvertedText bool   `json:"inverted_text"`
}

type MenuData struct {
	Tag         string        `json:"tag"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Products    []ProductCard `json:"products"`
}

type Step struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

type FeaturesData struct {
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
	Buttons     []Link `json:"buttons"`
}

type TestimonialsData struct {
	Tag          string               `json:"tag"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

type FaqData struct {
	Tag         string       `json:"tag"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Faqs        []models.Faq `json:"faqs"`
}

type ContactData struct {
	CTATitle       string       `json:"cta_title"`
	CTADescription string       `json:"cta_description"`
	CTAButton      Link         `json:"cta_button"`
	Faqs           []models.Faq `json:"faqs"`
}

type FooterData struct {
	LogoText  string `json:"logo_text"`
	LeftLink  Link   `json:"left_link"`
	RightLink Link   `json:"right_link"`
}

type BlogData struct {
	Tag         string     `json:"tag"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Posts       []BlogCard `json:"posts"`
}

type CatalogData struct {
	*CatalogResult
	SearchPlaceholder string `json:"search_placeholder"`
	EmptyMessage      string `json:"empty_message"`
}

type NotFoundData struct {
	Message string `json:"message"`
	Button  Link   `json:"button"`
}

// PageService composes page payloads. The theme is fixed at construction.
type PageService struct {
	theme   theme.Config
	content contentStore
	catalog catalogLister
	blog    blogLister
	detail  detailLoader
}

func NewPageService(cfg theme.Config, content contentStore, catalog catalogLister, blog blogLister, detail detailLoader) *PageService {
	return &PageService{theme: cfg, content: content, catalog: catalog, blog: blog, detail: detail}
}

func (s *PageService) newPage(nav Navbar) *Page {
	return &Page{
		Theme: s.theme,
		Tokens: ThemeTokens{
			Radius:       s.theme.Radius(),
			CappedRadius: s.theme.CappedRadius(),
			Background:   s.theme.BackgroundComponent(),
		},
		Navbar:   nav,
		Sections: []Section{},
	}
}

// section builds a section whose entrance starts revealed when aboveFold.
func section(id, typ string, a reveal.Animation, aboveFold bool, data interface{}) Section {
	m := reveal.New(a)
	if aboveFold {
		m.Observe(1)
	}
	return Section{ID: id, Type: typ, Entrance: m.Entrance(), Data: data}
}

// headingAnimation maps the theme's text animation onto a section entrance.
func (s *PageService) headingAnimation() reveal.Animation {
	if s.theme.TextAnimation == "reveal-blur" {
		return reveal.BlurReveal
	}
	return reveal.SlideUp
}

func footerSection() Section {
	return section("footer", "footer-logo-reveal", reveal.None, false, FooterData{
		LogoText:  brandName,
		LeftLink:  Link{Text: "Privacy Policy", Href: "/privacy"},
		RightLink: Link{Text: "Terms of Service", Href: "/terms"},
	})
}

func landingNavbar() Navbar {
	return Navbar{
		BrandName: brandName,
		NavItems: []NavItem{
			{Name: "Menu", ID: "menu"},
			{Name: "About", ID: "about"},
			{Name: "Testimonials", ID: "testimonials"},
			{Name: "FAQ", ID: "faq"},
			{Name: "Contact", ID: "contact"},
		},
		Button: Link{Text: "Order Now", Href: "#menu"},
	}
}

func shopNavbar() Navbar {
	return Navbar{
		BrandName: brandName,
		NavItems:  []NavItem{{Name: "Home", ID: "/"}, {Name: "Shop", ID: "/shop"}},
		Button:    Link{Text: "Cart", Href: "#cart"},
	}
}

// Home builds the landing page. Content that fails to load renders empty.
func (s *PageService) Home(ctx context.Context) *Page {
	page := s.newPage(landingNavbar())

	menu := []ProductCard{}
	if res, err := s.catalog.ListProducts(ctx, models.ProductFilter{Page: 1, Limit: 4}); err != nil {
		log.Printf("home: menu products unavailable: %v", err)
	} else {
		menu = res.Products
	}

	testimonials, err := s.content.ListTestimonials(ctx)
	if err != nil {
		log.Printf("home: testimonials unavailable: %v", err)
		testimonials = []models.Testimonial{}
	}
	faqs := s.faqs(ctx, models.FaqSectionFaq)
	contactFaqs := s.faqs(ctx, models.FaqSectionContact)

	page.Sections = append(page.Sections,
		section("hero", "hero-billboard-dashboard", s.headingAnimation(), true, HeroData{
			Tag:         "Welcome to Bayka",
			Title:       "Experience the Essence of Coffee",
			Description: "At Bayka, every cup tells a story. Savor expertly crafted coffees and delightful treats in a warm, inviting atmosphere.",
			Buttons:     []Link{{Text: "Our Menu", Href: "#menu"}, {Text: "Find Us", Href: "#contact"}},
			ImageSrc:    "https://img.b2bpic.net/free-photo/woman-grinding-coffee-coffee-machine_1303-31284.jpg",
			ImageAlt:    "Close-up of freshly roasted coffee beans",
			Stats: []Stat{
				{Title: "Cups Brewed", Values: []int{1200, 1500, 1350}, Description: "Daily average"},
				{Title: "New Visitors", Values: []int{85, 110, 95}, Description: "Per day"},
				{Title: "Loyalty Members", Values: []int{320, 350, 335}, Description: "Growing community"},
			},
		}),
		section("about", "media-about", reveal.Opacity, false, AboutData{
			Tag:          "Our Story",
			Title:        "More Than Just Coffee, It's an Experience",
			Description:  "Bayka is a place where passion for coffee meets a dedication to community. We meticulously source the finest beans, roast them to perfection, and craft each beverage with care. Our cozy space is designed for you to relax, connect, and enjoy a moment of tranquility.",
			ImageSrc:     "https://img.b2bpic.net/free-photo/group-friends-meeting-restaurant_23-2148395431.jpg",
			ImageAlt:     "Cozy interior of Bayka coffeeshop with warm lighting",
			Buttons:      []Link{{Text: "Learn More", Href: "#"}},
			InvertedText: s.theme.UseInvertedText(false),
		}),
		section("menu", "product-card-three", reveal.SlideUp, false, MenuData{
			Tag:         "Explore",
			Title:       "Our Handcrafted Menu",
			Description: "Discover your new favorite. From rich espressos to delightful pastries, we have something for every taste.",
			Products:    menu,
		}),
		section("features", "feature-process-steps", reveal.SlideUp, false, FeaturesData{
			Tag:         "Our Commitment",
			Title:       "Why Choose Bayka?",
			Description: "We pride ourselves on a commitment to quality, community, and an unparalleled coffee experience.",
			Steps: []Step{
				{Number: "01", Title: "Premium Sourcing", Description: "We partner with ethical farms to source the highest quality beans from around the globe.", Tag: "Ethical"},
				{Number: "02", Title: "Expert Baristas", Description: "Our skilled team meticulously crafts each drink to perfection, ensuring a consistent and delightful taste.", Tag: "Artisan"},
				{Number: "03", Title: "Cozy Atmosphere", Description: "Relax in our welcoming space, designed for comfort and connection. It's your perfect escape.", Tag: "Inviting"},
			},
			Buttons: []Link{{Text: "Our Story", Href: "#about"}},
		}),
		section("testimonials", "testimonial-card-one", reveal.SlideUp, false, TestimonialsData{
			Tag:          "Reviews",
			Title:        "What Our Customers Say",
			Description:  "Hear from those who love their Bayka experience.",
			Testimonials: testimonials,
		}),
		section("faq", "faq-double", reveal.SlideUp, false, FaqData{
			Tag:         "Help & Support",
			Title:       "Frequently Asked Questions",
			Description: "Got questions? We've got answers.",
			Faqs:        faqs,
		}),
		section("contact", "contact-faq", reveal.SlideUp, false, ContactData{
			CTATitle:       "Visit Us Today!",
			CTADescription: "Come and experience the Bayka difference. We look forward to serving you!",
			CTAButton:      Link{Text: "Get Directions", Href: "https://www.google.com/maps/search/coffeeshop+bayka"},
			Faqs:           contactFaqs,
		}),
		footerSection(),
	)
	return page
}

func (s *PageService) faqs(ctx context.Context, sectionName string) []models.Faq {
	faqs, err := s.content.ListFaqs(ctx, sectionName)
	if err != nil {
		log.Printf("faqs %s unavailable: %v", sectionName, err)
		return []models.Faq{}
	}
	return faqs
}

func (s *PageService) Blog(ctx context.Context) *Page {
	nav := landingNavbar()
	nav.NavItems = append([]NavItem{{Name: "Home", ID: "/"}}, nav.NavItems...)
	page := s.newPage(nav)

	posts, err := s.blog.ListPosts(ctx, 0)
	if err != nil {
		log.Printf("blog: posts unavailable: %v", err)
		posts = []BlogCard{}
	}

	page.Sections = append(page.Sections,
		section("blog", "blog-card-three", reveal.SlideUp, true, BlogData{
			Tag:         "Blog",
			Title:       "Featured Articles",
			Description: "Explore our latest insights",
			Posts:       posts,
		}),
		footerSection(),
	)
	return page
}

func (s *PageService) Shop(ctx context.Context, filter models.ProductFilter) *Page {
	page := s.newPage(shopNavbar())

	res, err := s.catalog.ListProducts(ctx, filter)
	if err != nil {
		log.Printf("shop: catalog unavailable: %v", err)
		f := NormalizeFilter(filter)
		res = &CatalogResult{
			Products: []ProductCard{},
			Filters:  []models.CategoryCount{},
			Search:   f.Search,
			Meta:     models.NewMetaData(f.Page, f.Limit, 0),
		}
	}

	page.Sections = append(page.Sections,
		section("product-catalog", "product-catalog", reveal.None, true, CatalogData{
			CatalogResult:     res,
			SearchPlaceholder: "Search products...",
			EmptyMessage:      "No products found",
		}),
		footerSection(),
	)
	return page
}

// Product builds the product page. found is false when the product could not
// be loaded; the page then carries a not-found section.
func (s *PageService) Product(ctx context.Context, id int64, variant string, quantity int) (page *Page, found bool) {
	page = s.newPage(shopNavbar())

	detail, err := s.detail.GetDetail(ctx, id, variant, quantity)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Printf("product %d unavailable: %v", id, err)
		}
		page.Sections = append(page.Sections, section("not-found-state", "not-found", reveal.None, true, NotFoundData{
			Message: "Product not found",
			Button:  Link{Text: "Back to Shop", Href: "/shop"},
		}))
		return page, false
	}

	page.Sections = append(page.Sections,
		section("product-detail-card", "product-detail-card", reveal.None, true, detail),
		footerSection(),
	)
	return page, true
}

// Subscribe records a newsletter signup. created is false for a repeat email.
func (s *PageService) Subscribe(ctx context.Context, email string) (created bool, err error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return false, ErrInvalidEmail
	}
	return s.content.Subscribe(ctx, addr.Address)
}
