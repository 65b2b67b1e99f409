package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"flowershop/internal/domain"
	"go.uber.org/zap"
)

type fakeRepo struct {
	lines    []domain.CartLine
	prices   map[string]int64
	listErr  error
	calls    int
	upserted []string
}

func (f *fakeRepo) ListByUser(_ context.Context, _ string) ([]domain.CartLine, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.CartLine, len(f.lines))
	copy(out, f.lines)
	for i := range out {
		if price, ok := f.prices[out[i].ProductID]; ok {
			out[i].ProductPrice = price
		}
	}
	return out, nil
}

func (f *fakeRepo) Upsert(_ context.Context, _, productID string, quantity int) error {
	f.upserted = append(f.upserted, productID)
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity += quantity
			return nil
		}
	}
	f.lines = append(f.lines, domain.CartLine{ID: "row-" + productID, ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeRepo) SetQuantity(_ context.Context, _, productID string, quantity int) error {
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, _, productID string) error {
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) Clear(_ context.Context, _ string) error {
	f.lines = nil
	return nil
}

type fakeSlot struct {
	data     []byte
	readErr  error
	writeErr error
	reads    int
	writes   int
	deletes  int
}

func (f *fakeSlot) Read(_ context.Context) ([]byte, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.data, nil
}

func (f *fakeSlot) Write(_ context.Context, data []byte) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.data = data
	return nil
}

func (f *fakeSlot) Delete(_ context.Context) error {
	f.deletes++
	f.data = nil
	return nil
}

func newTestService(repo lineRepo, s *fakeSlot) *Service {
	return &Service{
		repo:   repo,
		slots:  func(string) slot { return s },
		logger: zap.NewNop(),
	}
}

func TestOpenRequiresActor(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	_, err := svc.Open(context.Background(), Actor{})
	if !errors.Is(err, ErrNoActor) {
		t.Fatalf("expected ErrNoActor, got %v", err)
	}
}

func TestOpenRemoteLoadFailureSurfaces(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db down")}
	svc := newTestService(repo, &fakeSlot{})
	_, err := svc.Open(context.Background(), Actor{UserID: "u1"})
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestGuestSlotFailureYieldsEmptySession(t *testing.T) {
	s := &fakeSlot{readErr: errors.New("redis down")}
	svc := newTestService(&fakeRepo{}, s)
	session, err := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Items()) != 0 {
		t.Fatalf("expected empty session, got %+v", session.Items())
	}
}

func TestGuestCorruptSlotYieldsEmptySession(t *testing.T) {
	s := &fakeSlot{data: []byte("{not json")}
	svc := newTestService(&fakeRepo{}, s)
	session, err := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Items()) != 0 {
		t.Fatalf("expected empty session, got %+v", session.Items())
	}
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, err := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := session.Add(context.Background(), ProductInfo{}, 1); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty id, got %v", err)
	}
	if err := session.Add(context.Background(), ProductInfo{ID: "P001"}, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := session.Add(context.Background(), ProductInfo{ID: "P001"}, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestGuestAddFreezesSnapshot(t *testing.T) {
	s := &fakeSlot{}
	svc := newTestService(&fakeRepo{}, s)
	session, err := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	rose := ProductInfo{ID: "P002", Name: "로즈 꽃다발 50송이", Price: 80000, ImageURL: "img"}
	if err := session.Add(context.Background(), rose, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := session.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	line := items[0]
	if line.ProductName != rose.Name || line.ProductPrice != 80000 || line.Quantity != 2 {
		t.Fatalf("snapshot not frozen: %+v", line)
	}
	if !strings.HasPrefix(line.ID, "local-") {
		t.Fatalf("expected local line id, got %q", line.ID)
	}

	// the slot holds the full snapshot too
	var stored []domain.CartLine
	if err := json.Unmarshal(s.data, &stored); err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if len(stored) != 1 || stored[0].ProductPrice != 80000 {
		t.Fatalf("slot mismatch: %+v", stored)
	}
}

func TestGuestAddSameProductIncrements(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})

	p := ProductInfo{ID: "P001", Name: "프리미엄 축하화환 A", Price: 150000}
	if err := session.Add(context.Background(), p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.Add(context.Background(), p, 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	items := session.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestGuestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	s := &fakeSlot{writeErr: errors.New("redis down")}
	svc := newTestService(&fakeRepo{}, s)
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})

	if err := session.Add(context.Background(), ProductInfo{ID: "P003", Price: 65000}, 1); err != nil {
		t.Fatalf("add should absorb slot failure, got %v", err)
	}
	if session.Count() != 1 {
		t.Fatalf("expected in-memory line despite write failure, got %d", session.Count())
	}
}

func TestRemoteAddDelegatesAndReloads(t *testing.T) {
	repo := &fakeRepo{prices: map[string]int64{"P001": 150000}}
	svc := newTestService(repo, &fakeSlot{})
	session, err := svc.Open(context.Background(), Actor{UserID: "u1"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := session.Add(context.Background(), ProductInfo{ID: "P001", Price: 1}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := session.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", items)
	}
	// the remote store shows current product data, not the caller snapshot
	if items[0].ProductPrice != 150000 {
		t.Fatalf("expected re-joined price 150000, got %d", items[0].ProductPrice)
	}
}

func TestRemoteCurrentPriceWinsOverStale(t *testing.T) {
	repo := &fakeRepo{prices: map[string]int64{"P002": 80000}}
	svc := newTestService(repo, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{UserID: "u1"})
	if err := session.Add(context.Background(), ProductInfo{ID: "P002"}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	repo.prices["P002"] = 90000
	if err := session.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := session.Items()[0].ProductPrice; got != 90000 {
		t.Fatalf("expected current price 90000, got %d", got)
	}
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err := session.Add(context.Background(), ProductInfo{ID: "P001", Price: 1000}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := session.SetQuantity(context.Background(), "P001", 0); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(session.Items()) != 0 {
		t.Fatalf("expected line removed, got %+v", session.Items())
	}
}

func TestRemoveMissingProductIsNoop(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err := session.Remove(context.Background(), "P999"); err != nil {
		t.Fatalf("remove absent should be a no-op, got %v", err)
	}
}

func TestClearEmptiesBothStrategies(t *testing.T) {
	s := &fakeSlot{}
	svc := newTestService(&fakeRepo{}, s)
	guest, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	guest.Add(context.Background(), ProductInfo{ID: "P001", Price: 1000}, 1)
	if err := guest.Clear(context.Background()); err != nil {
		t.Fatalf("guest clear: %v", err)
	}
	if len(guest.Items()) != 0 || s.deletes != 1 {
		t.Fatalf("guest cart not cleared: items=%d deletes=%d", len(guest.Items()), s.deletes)
	}

	repo := &fakeRepo{}
	svc = newTestService(repo, &fakeSlot{})
	user, _ := svc.Open(context.Background(), Actor{UserID: "u1"})
	user.Add(context.Background(), ProductInfo{ID: "P001"}, 1)
	if err := user.Clear(context.Background()); err != nil {
		t.Fatalf("user clear: %v", err)
	}
	if len(user.Items()) != 0 || len(repo.lines) != 0 {
		t.Fatalf("user cart not cleared")
	}
}

func TestStrategyIsolation(t *testing.T) {
	repo := &fakeRepo{}
	s := &fakeSlot{}
	svc := newTestService(repo, s)

	guest, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	guest.Add(context.Background(), ProductInfo{ID: "P001", Price: 1000}, 1)
	if repo.calls != 0 || len(repo.upserted) != 0 {
		t.Fatalf("guest session touched the row store")
	}

	user, _ := svc.Open(context.Background(), Actor{UserID: "u1"})
	user.Add(context.Background(), ProductInfo{ID: "P001"}, 1)
	if s.writes != 1 {
		t.Fatalf("user session touched the guest slot: writes=%d", s.writes)
	}
}

func TestTotalAndCount(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	session.Add(context.Background(), ProductInfo{ID: "P001", Price: 150000}, 2)
	session.Add(context.Background(), ProductInfo{ID: "P003", Price: 65000}, 1)

	if got := session.Total(); got != 365000 {
		t.Fatalf("expected total 365000, got %d", got)
	}
	if got := session.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestAddSetRemoveScenario(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSlot{})
	session, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})

	rose := ProductInfo{ID: "P001", Name: "Rose", Price: 1000}
	if err := session.Add(context.Background(), rose, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if session.Total() != 3000 || session.Count() != 3 {
		t.Fatalf("after add: total=%d count=%d", session.Total(), session.Count())
	}

	if err := session.SetQuantity(context.Background(), "P001", 1); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if session.Total() != 1000 || session.Count() != 1 {
		t.Fatalf("after set: total=%d count=%d", session.Total(), session.Count())
	}

	if err := session.Remove(context.Background(), "P001"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if session.Total() != 0 || session.Count() != 0 || len(session.Items()) != 0 {
		t.Fatalf("cart should be empty: %+v", session.Items())
	}
}

func TestGuestCartSurvivesReopen(t *testing.T) {
	s := &fakeSlot{}
	svc := newTestService(&fakeRepo{}, s)

	first, _ := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err := first.Add(context.Background(), ProductInfo{ID: "P001", Name: "프리미엄 축하화환 A", Price: 150000}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	second, err := svc.Open(context.Background(), Actor{DeviceID: "dev1"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	items := second.Items()
	if len(items) != 1 || items[0].ProductName != "프리미엄 축하화환 A" {
		t.Fatalf("expected persisted guest line, got %+v", items)
	}
}
