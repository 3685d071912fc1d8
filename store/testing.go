package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory builds an in-memory store with the same uniqueness and ordering
// semantics as the Mongo implementation. Intended for handler tests.
func NewMemory() *Store {
	users := &memUsers{byID: map[primitive.ObjectID]models.User{}}
	return &Store{
		Users:      users,
		Categories: &memCategories{byID: map[primitive.ObjectID]models.Category{}},
		Products:   &memProducts{byID: map[primitive.ObjectID]models.Product{}},
		Orders:     &memOrders{users: users},
	}
}

type memUsers struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.User
}

func (s *memUsers) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.byID[u.ID] = *u
	return nil
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) FindByEmailAndAnswer(_ context.Context, email, answer string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email && u.Answer == answer {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return &u, nil
}

func (s *memUsers) SetPassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hashed
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

type memCategories struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Category
}

func (s *memCategories) Insert(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Slug == c.Slug {
			return ErrDuplicate
		}
	}
	c.ID = primitive.NewObjectID()
	s.byID[c.ID] = *c
	return nil
}

func (s *memCategories) Update(_ context.Context, id primitive.ObjectID, name, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	for otherID, other := range s.byID {
		if otherID != id && other.Slug == slug {
			return nil, ErrDuplicate
		}
	}
	c.Name = name
	c.Slug = slug
	s.byID[id] = c
	return &c, nil
}

func (s *memCategories) All(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for _, c := range s.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byID {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCategories) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type memProducts struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Product
	seq  int // insertion counter so newest-first ordering is deterministic
}

func (s *memProducts) Insert(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.seq++
	p.CreatedAt = time.Now().UTC().Add(time.Duration(s.seq) * time.Millisecond)
	s.byID[p.ID] = *p
	return nil
}

func (s *memProducts) Update(_ context.Context, id primitive.ObjectID, fields ProductFields) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Name = fields.Name
	p.Slug = fields.Slug
	p.Description = fields.Description
	p.Price = fields.Price
	p.Category = fields.Category
	p.Quantity = fields.Quantity
	p.Shipping = fields.Shipping
	if fields.Photo != nil {
		p.Photo = *fields.Photo
	}
	s.byID[id] = p
	stripped := p
	stripped.Photo.Data = nil
	return &stripped, nil
}

func (s *memProducts) snapshot(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range s.byID {
		if keep == nil || keep(p) {
			p.Photo.Data = nil
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memProducts) Latest(_ context.Context, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snapshot(nil)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memProducts) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.byID {
		if p.Slug == slug {
			p.Photo.Data = nil
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memProducts) PhotoByID(_ context.Context, id primitive.ObjectID) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok || len(p.Photo.Data) == 0 {
		return nil, ErrNotFound
	}
	photo := p.Photo
	return &photo, nil
}

func (s *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memProducts) Filter(_ context.Context, f ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(p models.Product) bool {
		if len(f.Categories) > 0 {
			found := false
			for _, c := range f.Categories {
				if p.Category == c {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			return false
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			return false
		}
		return true
	}), nil
}

func (s *memProducts) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

func (s *memProducts) Page(_ context.Context, page, perPage int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	out := s.snapshot(nil)
	start := (page - 1) * perPage
	if start >= int64(len(out)) {
		return []models.Product{}, nil
	}
	end := start + perPage
	if end > int64(len(out)) {
		end = int64(len(out))
	}
	return out[start:end], nil
}

func (s *memProducts) Search(_ context.Context, keyword string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kw := strings.ToLower(keyword)
	return s.snapshot(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Description), kw)
	}), nil
}

func (s *memProducts) Related(_ context.Context, productID, categoryID primitive.ObjectID, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snapshot(func(p models.Product) bool {
		return p.Category == categoryID && p.ID != productID
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memProducts) ByCategory(_ context.Context, categoryID primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(p models.Product) bool { return p.Category == categoryID }), nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []models.Order
	users  *memUsers

	// InsertErr, when set, makes the next Insert fail. Used to exercise the
	// charged-but-unrecorded payment path.
	InsertErr error
}

func (s *memOrders) Insert(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		err := s.InsertErr
		s.InsertErr = nil
		return err
	}
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	if o.Status == "" {
		o.Status = models.StatusNotProcessed
	}
	s.orders = append(s.orders, *o)
	return nil
}

func (s *memOrders) view(o models.Order) models.OrderView {
	view := models.OrderView{
		ID:        o.ID,
		Products:  []models.Product{},
		Payment:   o.Payment,
		Buyer:     models.BuyerRef{ID: o.Buyer},
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
	if u, err := s.users.FindByID(context.Background(), o.Buyer); err == nil {
		view.Buyer.Name = u.Name
	}
	return view
}

func (s *memOrders) ByBuyer(_ context.Context, buyer primitive.ObjectID) ([]models.OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.OrderView{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].Buyer == buyer {
			out = append(out, s.view(s.orders[i]))
		}
	}
	return out, nil
}

func (s *memOrders) All(_ context.Context) ([]models.OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.OrderView{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.view(s.orders[i]))
	}
	return out, nil
}

func (s *memOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// FailNextOrderInsert arms the memory order store to fail its next insert.
func FailNextOrderInsert(s *Store, err error) {
	s.Orders.(*memOrders).InsertErr = err
}

// OrderCount reports how many orders the memory store holds.
func OrderCount(s *Store) int {
	mem := s.Orders.(*memOrders)
	mem.mu.Lock()
	defer mem.mu.Unlock()
	return len(mem.orders)
}
