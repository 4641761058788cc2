package services

import (
	"context"
	"mime/multipart"
	"strings"
	"sync"
	"sync/atomic"

	"bayka/libs"
	"bayka/models"
	"bayka/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func latte() *models.Product {
	return &models.Product{
		ID:           1,
		Name:         "Classic Latte",
		CategoryID:   1,
		CategoryName: "Coffee",
		Price:        dec("4.50"),
		Rating:       dec("4.8"),
		Stock:        120,
		SKU:          "BAY-LAT-001",
		IsActive:     true,
		Images:       []models.ProductImage{{ID: 1, Src: "https://img.example.com/latte.jpg", Alt: "Latte"}},
		Variants: []models.ProductVariant{
			{ID: 1, Name: "Whole Milk"},
			{ID: 2, Name: "Oat Milk", PriceAdjustment: dec("0.50")},
		},
	}
}

func coldBrew() *models.Product {
	p := &models.Product{
		ID:           4,
		Name:         "Cold Brew",
		CategoryID:   3,
		CategoryName: "Cold Drinks",
		Price:        dec("5.00"),
		Stock:        3,
		SKU:          "BAY-CLD-001",
		IsActive:     true,
	}
	p.SalePrice = decimal.NewNullDecimal(dec("4.00"))
	return p
}

type stubProducts struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	getCalls int32
	listErr  error
	writeErr error
	imageErr error
	nextID   int64
}

func newStubProducts(ps ...*models.Product) *stubProducts {
	s := &stubProducts{products: map[int64]*models.Product{}, nextID: 100}
	for _, p := range ps {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProducts) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	atomic.AddInt32(&s.getCalls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) ListCategories(context.Context) ([]models.CategoryCount, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []models.CategoryCount{{ID: 1, Name: "Coffee", Count: len(s.products)}}, nil
}

func (s *stubProducts) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for id := int64(1); id <= s.nextID; id++ {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *stubProducts) CreateProduct(_ context.Context, p *models.Product) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	p.IsActive = true
	s.products[p.ID] = p
	return nil
}

func (s *stubProducts) UpdateProduct(_ context.Context, p *models.Product) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

func (s *stubProducts) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubProducts) AddImage(_ context.Context, productID int64, img *models.ProductImage) error {
	if s.imageErr != nil {
		return s.imageErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[productID]
	img.ID = int64(len(p.Images) + 1)
	img.Position = len(p.Images)
	p.Images = append(p.Images, *img)
	return nil
}

type stubProvider struct {
	calls   int32
	err     error
	block   chan struct{}
	started chan struct{}
	lastReq libs.CreatePaymentRequest
	mu      sync.Mutex
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) CreatePayment(_ context.Context, req libs.CreatePaymentRequest) (libs.CreatePaymentResponse, error) {
	atomic.AddInt32(&p.calls, 1)
	p.mu.Lock()
	p.lastReq = req
	p.mu.Unlock()
	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.block != nil {
		<-p.block
	}
	if p.err != nil {
		return libs.CreatePaymentResponse{}, p.err
	}
	return libs.CreatePaymentResponse{
		ProviderRef: "pay_" + req.Reference[:8],
		RedirectURL: "https://pay.example.com/c/" + req.Reference,
	}, nil
}

func (p *stubProvider) request() libs.CreatePaymentRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastReq
}

type stubCheckoutStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.CheckoutSession
	err      error
}

func newStubCheckoutStore() *stubCheckoutStore {
	return &stubCheckoutStore{sessions: map[uuid.UUID]*models.CheckoutSession{}}
}

func (s *stubCheckoutStore) Create(_ context.Context, session *models.CheckoutSession) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *stubCheckoutStore) GetByID(_ context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *stubCheckoutStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.CheckoutStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if session.Status != models.CheckoutStatusOpen {
		return false, nil
	}
	session.Status = status
	return true, nil
}

func (s *stubCheckoutStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type stubMailer struct {
	sent []*models.CheckoutSession
	err  error
}

func (m *stubMailer) SendOrderConfirmation(session *models.CheckoutSession) error {
	m.sent = append(m.sent, session)
	return m.err
}

type stubContent struct {
	testimonials []models.Testimonial
	faqs         map[string][]models.Faq
	subscribers  map[string]bool
	err          error
}

func (s *stubContent) ListTestimonials(context.Context) ([]models.Testimonial, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.testimonials, nil
}

func (s *stubContent) ListFaqs(_ context.Context, section string) ([]models.Faq, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.faqs[section], nil
}

func (s *stubContent) Subscribe(_ context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.subscribers == nil {
		s.subscribers = map[string]bool{}
	}
	email = strings.ToLower(email)
	if s.subscribers[email] {
		return false, nil
	}
	s.subscribers[email] = true
	return true, nil
}

type stubBlog struct {
	posts []models.BlogPost
	err   error
}

func (s *stubBlog) ListPublished(_ context.Context, limit int) ([]models.BlogPost, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && limit < len(s.posts) {
		return s.posts[:limit], nil
	}
	return s.posts, nil
}

func (s *stubBlog) GetBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubBlog) Create(_ context.Context, post *models.BlogPost) error {
	for _, p := range s.posts {
		if p.Slug == post.Slug {
			return repositories.ErrDuplicate
		}
	}
	post.ID = int64(len(s.posts) + 1)
	s.posts = append(s.posts, *post)
	return nil
}

type stubUsers struct {
	users  map[string]*models.User
	nextID int
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[string]*models.User{}}
}

func (s *stubUsers) Create(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.Email] = &cp
	return nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, id int, hashed string) error {
	for _, u := range s.users {
		if u.ID == id {
			u.Password = hashed
			return nil
		}
	}
	return repositories.ErrNotFound
}

type stubUploader struct {
	uploaded []string
	deleted  []string
	err      error
}

func (u *stubUploader) UploadImage(_ context.Context, _ multipart.File, filename, folder string) (string, string, error) {
	if u.err != nil {
		return "", "", u.err
	}
	publicID := folder + "/" + filename
	u.uploaded = append(u.uploaded, publicID)
	return "https://res.cloudinary.com/demo/" + publicID, publicID, nil
}

func (u *stubUploader) DeleteImage(_ context.Context, publicID string) error {
	u.deleted = append(u.deleted, publicID)
	return nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.calls++
}
