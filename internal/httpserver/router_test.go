package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flowershop/internal/domain"
	orderrepo "flowershop/internal/repository/order"
	productrepo "flowershop/internal/repository/product"
	tokenrepo "flowershop/internal/repository/token"
	authsvc "flowershop/internal/service/auth"
	cartsvc "flowershop/internal/service/cart"
	ordersvc "flowershop/internal/service/order"
	productsvc "flowershop/internal/service/product"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type memUserRepo struct {
	byID   map[string]domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("u%d", m.nextID)
	u.CreatedAt = time.Now()
	m.byID[u.ID] = u
	return &u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	m.byID[id] = u
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, tok tokenrepo.Token) error {
	if _, ok := m.tokens[tok.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[tok.Token] = tok
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	tok, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tok, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

type memProductRepo struct {
	products map[string]domain.Product
	order    []string
	nextID   int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]domain.Product{}}
}

func (m *memProductRepo) List(_ context.Context, f productrepo.ListFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range m.order {
		p := m.products[id]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.nextID++
	p.ID = fmt.Sprintf("P%03d", m.nextID)
	p.RegisteredAt = time.Now()
	m.products[p.ID] = p
	m.order = append(m.order, p.ID)
	return &p, nil
}

func (m *memProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	old, ok := m.products[p.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.RegisteredAt = old.RegisteredAt
	m.products[p.ID] = p
	return &p, nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.products, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// memCartRepo mirrors the row store: only (user, product, quantity) is kept
// and display data is joined from the product repo on every list.
type memCartRepo struct {
	products *memProductRepo
	rows     map[string][]string // userID -> product ids in insertion order
	qty      map[string]int      // userID/productID -> quantity
}

func newMemCartRepo(products *memProductRepo) *memCartRepo {
	return &memCartRepo{
		products: products,
		rows:     map[string][]string{},
		qty:      map[string]int{},
	}
}

func (m *memCartRepo) key(userID, productID string) string {
	return userID + "/" + productID
}

func (m *memCartRepo) ListByUser(_ context.Context, userID string) ([]domain.CartLine, error) {
	var out []domain.CartLine
	for _, pid := range m.rows[userID] {
		p := m.products.products[pid]
		out = append(out, domain.CartLine{
			ID:           m.key(userID, pid),
			ProductID:    pid,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			ProductImage: p.ImageURL,
			Quantity:     m.qty[m.key(userID, pid)],
		})
	}
	return out, nil
}

func (m *memCartRepo) Upsert(_ context.Context, userID, productID string, quantity int) error {
	k := m.key(userID, productID)
	if _, ok := m.qty[k]; !ok {
		m.rows[userID] = append(m.rows[userID], productID)
	}
	m.qty[k] += quantity
	return nil
}

func (m *memCartRepo) SetQuantity(_ context.Context, userID, productID string, quantity int) error {
	k := m.key(userID, productID)
	if _, ok := m.qty[k]; ok {
		m.qty[k] = quantity
	}
	return nil
}

func (m *memCartRepo) Delete(_ context.Context, userID, productID string) error {
	k := m.key(userID, productID)
	if _, ok := m.qty[k]; !ok {
		return nil
	}
	delete(m.qty, k)
	for i, pid := range m.rows[userID] {
		if pid == productID {
			m.rows[userID] = append(m.rows[userID][:i], m.rows[userID][i+1:]...)
			break
		}
	}
	return nil
}

func (m *memCartRepo) Clear(_ context.Context, userID string) error {
	for _, pid := range m.rows[userID] {
		delete(m.qty, m.key(userID, pid))
	}
	delete(m.rows, userID)
	return nil
}

type memOrderRepo struct {
	orders map[string]domain.Order
	nextID int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]domain.Order{}}
}

func (m *memOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	m.nextID++
	o.ID = fmt.Sprintf("o%d", m.nextID)
	o.CreatedAt = time.Now()
	m.orders[o.ID] = o
	return &o, nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (m *memOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *memOrderRepo) UpdateDelivery(_ context.Context, id string, in orderrepo.DeliveryUpdate) error {
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if in.DeliveryDate != nil {
		o.DeliveryDate = in.DeliveryDate
	}
	if in.DeliveryPhoto != nil {
		o.DeliveryPhoto = in.DeliveryPhoto
	}
	if in.ConfirmationDoc != nil {
		o.ConfirmationDoc = in.ConfirmationDoc
	}
	m.orders[id] = o
	return nil
}

func (m *memOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrderRepo) SalesByDay(_ context.Context, _, _ time.Time) ([]orderrepo.SalesBucket, error) {
	return nil, nil
}

func (m *memOrderRepo) SalesByMonth(_ context.Context, _ int) ([]orderrepo.SalesBucket, error) {
	return nil, nil
}

type testEnv struct {
	router   *gin.Engine
	users    *memUserRepo
	products *memProductRepo
	carts    *memCartRepo
	orders   *memOrderRepo
	auth     *authsvc.Service
}

// newTestEnv wires real services over in-memory repos. The redis client
// points nowhere; guest slot failures are absorbed by the cart service, so
// guest requests still work within a single request.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	products := newMemProductRepo()
	carts := newMemCartRepo(products)
	orders := newMemOrderRepo()

	deadRedis := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	auth := authsvc.New(users, tokens)

	router := buildRouter(zap.NewNop(), nil, Deps{
		AuthSvc:    auth,
		ProductSvc: productsvc.New(products),
		CartSvc:    cartsvc.New(carts, deadRedis, zap.NewNop()),
		OrderSvc:   ordersvc.New(orders),
		UserRepo:   users,
	}, []string{"http://localhost:3000"})

	return &testEnv{
		router:   router,
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		auth:     auth,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers a user and returns its id plus a bearer token.
func (e *testEnv) signupAndLogin(t *testing.T, email, role string) (string, string) {
	t.Helper()
	ctx := context.Background()
	u, err := e.auth.Signup(ctx, authsvc.SignupInput{
		Email: email, Password: "password1", Name: "테스트유저",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if role != "" && role != domain.RoleUser {
		if err := e.users.UpdateRole(ctx, u.ID, role); err != nil {
			t.Fatalf("promote: %v", err)
		}
	}
	_, access, _, err := e.auth.Login(ctx, email, "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return u.ID, "Bearer " + access
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrdersRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/orders", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "로그인이 필요합니다") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signupAndLogin(t, "user@example.com", domain.RoleUser)

	rec := env.do(t, http.MethodGet, "/api/admin/orders", "", map[string]string{"Authorization": token})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}

	_, adminToken := env.signupAndLogin(t, "admin@example.com", domain.RoleAdmin)
	rec = env.do(t, http.MethodGet, "/api/admin/orders", "", map[string]string{"Authorization": adminToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	body := `{"email":"hong@example.com","password":"password1","name":"홍길동"}`
	rec := env.do(t, http.MethodPost, "/api/auth/register", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	// duplicate registrations are rejected with the storefront message
	rec = env.do(t, http.MethodPost, "/api/auth/register", body, nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "이미 사용 중인 이메일입니다") {
		t.Fatalf("duplicate register: got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", `{"email":"hong@example.com","password":"password1"}`, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("login: got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", `{"email":"hong@example.com","password":"wrong-pass"}`, nil)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "이메일 또는 비밀번호가 일치하지 않습니다") {
		t.Fatalf("bad login: got %d body=%s", rec.Code, rec.Body.String())
	}
}
