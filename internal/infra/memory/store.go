// Package memory はDBを使わないリポジトリ実装（ローカル開発・テスト用）。
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type linkKey struct {
	productID  int64
	categoryID int64
}

type memState struct {
	nextID      int64
	inventories map[int64]model.Inventory
	products    map[int64]model.Product
	categories  map[int64]model.Category
	links       map[linkKey]struct{}
	adjustments []model.QuantityAdjustment
}

func (s memState) clone() memState {
	c := memState{
		nextID:      s.nextID,
		inventories: make(map[int64]model.Inventory, len(s.inventories)),
		products:    make(map[int64]model.Product, len(s.products)),
		categories:  make(map[int64]model.Category, len(s.categories)),
		links:       make(map[linkKey]struct{}, len(s.links)),
		adjustments: append([]model.QuantityAdjustment(nil), s.adjustments...),
	}
	for k, v := range s.inventories {
		c.inventories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

// 全リポジトリとTransactionManagerを実装する。
// トランザクションは直列化し、errorならbegin時点の状態に戻す。
// トランザクション外の操作もtxMuを取るので、ロールバックで他の書き込みを消さない。
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   memState
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		st: memState{
			inventories: map[int64]model.Inventory{},
			products:    map[int64]model.Product{},
			categories:  map[int64]model.Category{},
			links:       map[linkKey]struct{}{},
		},
		now: time.Now,
	}
}

// inTx=false ならトランザクションと同じtxMuで直列化する
func (s *Store) acquire(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(txView{s: s}); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Inventory() repo.InventoryRepository    { return inventoryRepo{s: s} }
func (s *Store) Products() repo.ProductRepository       { return productRepo{s: s} }
func (s *Store) Categories() repo.CategoryRepository    { return categoryRepo{s: s} }
func (s *Store) Adjustments() repo.AdjustmentRepository { return adjustmentRepo{s: s} }

// WithinTxの中で渡すリポジトリ（txMuは取得済み）
type txView struct{ s *Store }

func (v txView) Inventory() repo.InventoryRepository    { return inventoryRepo{s: v.s, inTx: true} }
func (v txView) Products() repo.ProductRepository       { return productRepo{s: v.s, inTx: true} }
func (v txView) Categories() repo.CategoryRepository    { return categoryRepo{s: v.s, inTx: true} }
func (v txView) Adjustments() repo.AdjustmentRepository { return adjustmentRepo{s: v.s, inTx: true} }

// 商品-カテゴリ関連の一覧（product_id, category_id 順）
func (s *Store) Links() []model.ProductCategory {
	defer s.acquire(false)()

	out := make([]model.ProductCategory, 0, len(s.st.links))
	for k := range s.st.links {
		out = append(out, model.ProductCategory{ProductID: k.productID, CategoryID: k.categoryID})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

func sortedProducts(m map[int64]model.Product, keep func(model.Product) bool) []model.Product {
	out := []model.Product{}
	for _, p := range m {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// inventory

type inventoryRepo struct {
	s    *Store
	inTx bool
}

func (r inventoryRepo) List(ctx context.Context) ([]model.Inventory, error) {
	defer r.s.acquire(r.inTx)()
	out := []model.Inventory{}
	for _, inv := range r.s.st.inventories {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r inventoryRepo) FindByID(ctx context.Context, id int64) (model.Inventory, error) {
	defer r.s.acquire(r.inTx)()
	inv, ok := r.s.st.inventories[id]
	if !ok {
		return model.Inventory{}, repo.ErrNotFound
	}
	return inv, nil
}

// トランザクションが直列なのでロックは不要
func (r inventoryRepo) FindByIDForUpdate(ctx context.Context, id int64) (model.Inventory, error) {
	return r.FindByID(ctx, id)
}

func (r inventoryRepo) Create(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	defer r.s.acquire(r.inTx)()
	inv.ID = r.s.id()
	now := r.s.now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	r.s.st.inventories[inv.ID] = inv
	return inv, nil
}

func (r inventoryRepo) Update(ctx context.Context, inv model.Inventory) error {
	defer r.s.acquire(r.inTx)()
	cur, ok := r.s.st.inventories[inv.ID]
	if !ok {
		return repo.ErrNotFound
	}
	inv.CreatedAt = cur.CreatedAt
	inv.UpdatedAt = r.s.now()
	r.s.st.inventories[inv.ID] = inv
	return nil
}

func (r inventoryRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.st.inventories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.st.inventories, id)
	return nil
}

func (r inventoryRepo) ListProducts(ctx context.Context, inventoryID int64) ([]model.Product, error) {
	defer r.s.acquire(r.inTx)()
	return sortedProducts(r.s.st.products, func(p model.Product) bool { return p.InventoryID == inventoryID }), nil
}

// product

type productRepo struct {
	s    *Store
	inTx bool
}

func (r productRepo) List(ctx context.Context) ([]model.Product, error) {
	defer r.s.acquire(r.inTx)()
	return sortedProducts(r.s.st.products, func(model.Product) bool { return true }), nil
}

func (r productRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	defer r.s.acquire(r.inTx)()
	p, ok := r.s.st.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r productRepo) FindByNameAndInventory(ctx context.Context, name string, inventoryID int64) (model.Product, error) {
	defer r.s.acquire(r.inTx)()
	matched := sortedProducts(r.s.st.products, func(p model.Product) bool {
		return p.Name == name && p.InventoryID == inventoryID
	})
	if len(matched) == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return matched[0], nil
}

func (r productRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	defer r.s.acquire(r.inTx)()
	p.ID = r.s.id()
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.st.products[p.ID] = p
	return p, nil
}

func (r productRepo) Update(ctx context.Context, p model.Product) error {
	defer r.s.acquire(r.inTx)()
	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.st.products[p.ID] = p
	return nil
}

func (r productRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.st.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.st.products, id)
	for k := range r.s.st.links {
		if k.productID == id {
			delete(r.s.st.links, k)
		}
	}
	return nil
}

// category

type categoryRepo struct {
	s    *Store
	inTx bool
}

func (r categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	defer r.s.acquire(r.inTx)()
	out := []model.Category{}
	for _, c := range r.s.st.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categoryRepo) FindByID(ctx context.Context, id int64) (model.Category, error) {
	defer r.s.acquire(r.inTx)()
	c, ok := r.s.st.categories[id]
	if !ok {
		return model.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (r categoryRepo) FindByName(ctx context.Context, name string) (model.Category, error) {
	defer r.s.acquire(r.inTx)()
	var found *model.Category
	for _, c := range r.s.st.categories {
		if c.Name == name && (found == nil || c.ID < found.ID) {
			c := c
			found = &c
		}
	}
	if found == nil {
		return model.Category{}, repo.ErrNotFound
	}
	return *found, nil
}

func (r categoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	defer r.s.acquire(r.inTx)()
	c.ID = r.s.id()
	r.s.st.categories[c.ID] = c
	return c, nil
}

func (r categoryRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.acquire(r.inTx)()
	if _, ok := r.s.st.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.st.categories, id)
	for k := range r.s.st.links {
		if k.categoryID == id {
			delete(r.s.st.links, k)
		}
	}
	return nil
}

func (r categoryRepo) AddProduct(ctx context.Context, link model.ProductCategory) error {
	defer r.s.acquire(r.inTx)()
	r.s.st.links[linkKey{link.ProductID, link.CategoryID}] = struct{}{}
	return nil
}

func (r categoryRepo) ListProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	defer r.s.acquire(r.inTx)()
	return sortedProducts(r.s.st.products, func(p model.Product) bool {
		_, ok := r.s.st.links[linkKey{p.ID, categoryID}]
		return ok
	}), nil
}

// adjustment

type adjustmentRepo struct {
	s    *Store
	inTx bool
}

func (r adjustmentRepo) Create(ctx context.Context, adj model.QuantityAdjustment) error {
	defer r.s.acquire(r.inTx)()
	adj.ID = r.s.id()
	if adj.CreatedAt.IsZero() {
		adj.CreatedAt = r.s.now()
	}
	r.s.st.adjustments = append(r.s.st.adjustments, adj)
	return nil
}

func (r adjustmentRepo) ListByInventory(ctx context.Context, inventoryID int64) ([]model.QuantityAdjustment, error) {
	defer r.s.acquire(r.inTx)()
	out := []model.QuantityAdjustment{}
	for _, a := range r.s.st.adjustments {
		if a.InventoryID == inventoryID {
			out = append(out, a)
		}
	}
	return out, nil
}
