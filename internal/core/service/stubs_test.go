package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests. They mirror the semantics of
// the real Mongo repositories, including the cart version check.
// ---------------------------------------------------------------------------

type stubCartRepo struct {
	mu       sync.Mutex
	carts    map[string]*domain.Cart
	saveErr  error
	clearErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *stubCartRepo) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone, nil
}

func (r *stubCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.carts[cart.UserID]
	if ok && stored.Version != cart.Version {
		return domain.ErrVersionConflict
	}
	clone := *cart
	clone.Items = append([]domain.CartItem(nil), cart.Items...)
	clone.Version++
	r.carts[cart.UserID] = &clone
	cart.Version = clone.Version
	return nil
}

func (r *stubCartRepo) Clear(_ context.Context, userID string) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		c.Items = []domain.CartItem{}
		c.TotalItems = 0
		c.Subtotal = 0
		c.Shipping = 0
		c.Tax = 0
		c.Total = 0
		c.Version++
	}
	return nil
}

func (r *stubCartRepo) Watch(context.Context, string) (<-chan *domain.Cart, ports.Subscription, error) {
	ch := make(chan *domain.Cart)
	close(ch)
	return ch, ports.SubscriptionFunc(func() {}), nil
}

// ---------------------------------------------------------------------------

type stubProductRepo struct {
	products   map[string]*domain.Product
	categories map[string]*domain.Category
	brands     map[string]*domain.Brand
	findCalls  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:   make(map[string]*domain.Product),
		categories: make(map[string]*domain.Category),
		brands:     make(map[string]*domain.Brand),
	}
}

func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.BrandID != "" && p.BrandID != f.BrandID {
			continue
		}
		if f.NamePrefix != "" && (len(p.Name) < len(f.NamePrefix) || p.Name[:len(f.NamePrefix)] != f.NamePrefix) {
			continue
		}
		clone := *p
		out = append(out, &clone)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.findCalls++
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("p%d", len(r.products)+1)
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ListCategories(context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubProductRepo) FindCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *stubProductRepo) CreateCategory(_ context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("c%d", len(r.categories)+1)
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubProductRepo) UpdateCategory(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubProductRepo) DeleteCategory(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *stubProductRepo) ListBrands(context.Context) ([]*domain.Brand, error) {
	var out []*domain.Brand
	for _, b := range r.brands {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubProductRepo) FindBrandByID(_ context.Context, id string) (*domain.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, domain.ErrBrandNotFound
	}
	return b, nil
}

func (r *stubProductRepo) CreateBrand(_ context.Context, b *domain.Brand) error {
	if b.ID == "" {
		b.ID = fmt.Sprintf("b%d", len(r.brands)+1)
	}
	r.brands[b.ID] = b
	return nil
}

func (r *stubProductRepo) UpdateBrand(_ context.Context, b *domain.Brand) error {
	if _, ok := r.brands[b.ID]; !ok {
		return domain.ErrBrandNotFound
	}
	r.brands[b.ID] = b
	return nil
}

func (r *stubProductRepo) DeleteBrand(_ context.Context, id string) error {
	delete(r.brands, id)
	return nil
}

func (r *stubProductRepo) WatchProduct(context.Context, string) (<-chan *domain.Product, ports.Subscription, error) {
	ch := make(chan *domain.Product)
	close(ch)
	return ch, ports.SubscriptionFunc(func() {}), nil
}

// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	byIdem    map[string]*domain.Order
	createErr error
	seq       int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[string]*domain.Order),
		byIdem: make(map[string]*domain.Order),
	}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	o.ID = fmt.Sprintf("ord%d", r.seq)
	clone := *o
	r.orders[o.ID] = &clone
	if o.IdempotencyKey != "" {
		r.byIdem[o.IdempotencyKey] = &clone
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	o, ok := r.byIdem[key]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (r *stubOrderRepo) Watch(context.Context, string) (<-chan *domain.Order, ports.Subscription, error) {
	ch := make(chan *domain.Order)
	close(ch)
	return ch, ports.SubscriptionFunc(func() {}), nil
}

// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("u%d", r.seq)
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.NamePrefix != "" && (len(u.Name) < len(f.NamePrefix) || u.Name[:len(f.NamePrefix)] != f.NamePrefix) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byEmail map[string]*domain.Credentials
	byID    map[string]*domain.Credentials
	seq     int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		byEmail: make(map[string]*domain.Credentials),
		byID:    make(map[string]*domain.Credentials),
	}
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.Credentials, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubAuthRepo) FindByUserID(_ context.Context, userID string) (*domain.Credentials, error) {
	c, ok := r.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, c *domain.Credentials) (*domain.Credentials, error) {
	if _, ok := r.byEmail[c.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	c.UserID = fmt.Sprintf("u%d", r.seq)
	clone := *c
	r.byEmail[c.Email] = &clone
	r.byID[c.UserID] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) UpdatePassword(_ context.Context, userID, hash string) error {
	c, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	c.PasswordHash = hash
	r.byEmail[c.Email].PasswordHash = hash
	return nil
}

func (r *stubAuthRepo) Delete(_ context.Context, userID string) error {
	c, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, c.Email)
	delete(r.byID, userID)
	return nil
}

// ---------------------------------------------------------------------------

type stubResetStore struct {
	tokens map[string]string
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, token, userID string) error {
	s.tokens[token] = userID
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	delete(s.tokens, token)
	return userID, nil
}

// ---------------------------------------------------------------------------

type stubGuard struct {
	acquired   bool
	denyNext   bool
	acquireErr error
	released   int
}

func (g *stubGuard) Acquire(context.Context, string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.denyNext {
		return false, nil
	}
	g.acquired = true
	return true, nil
}

func (g *stubGuard) Release(context.Context, string) error {
	g.released++
	return nil
}

type stubPublisher struct {
	created       []string
	statusChanges []string
	err           error
}

func (p *stubPublisher) PublishOrderCreated(_ context.Context, o *domain.Order) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, o.ID)
	return nil
}

func (p *stubPublisher) PublishOrderStatusChanged(_ context.Context, o *domain.Order, _ domain.OrderStatus) error {
	if p.err != nil {
		return p.err
	}
	p.statusChanges = append(p.statusChanges, o.ID)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

type stubEnqueuer struct {
	jobs []ports.NotificationJob
}

func (e *stubEnqueuer) Enqueue(job ports.NotificationJob) {
	e.jobs = append(e.jobs, job)
}

type stubCache struct {
	entries map[string]*domain.Product
	getErr  error
	hits    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.Product)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.Product, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return p, nil
}

func (c *stubCache) Set(_ context.Context, p *domain.Product) error {
	c.entries[p.ID] = p
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

type stubSender struct {
	sent []*domain.PushNotification
	err  error
}

func (s *stubSender) Send(_ context.Context, n *domain.PushNotification) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

var errBoom = errors.New("boom")
