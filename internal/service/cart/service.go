package cart

import (
	"context"
	"errors"
	"time"

	"flowershop/internal/domain"
	cartlinerepo "flowershop/internal/repository/cartline"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Guest carts live this long after the last write before the slot expires.
const guestCartTTL = 30 * 24 * time.Hour

// ErrNoActor is returned when neither a user id nor a device id is present.
var ErrNoActor = errors.New("cart actor required")

// Actor identifies who owns a cart: a logged-in user (UserID set) or an
// anonymous device (DeviceID set). The two cart scopes are disjoint; logging
// in opens a fresh session and the guest cart is left behind.
type Actor struct {
	UserID   string
	DeviceID string
}

type lineRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	Upsert(ctx context.Context, userID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Delete(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// Service opens per-actor cart sessions, selecting the persistence strategy
// from the actor identity.
type Service struct {
	repo   lineRepo
	slots  func(deviceID string) slot
	logger *zap.Logger
}

func New(repo cartlinerepo.Repository, kv *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo: repo,
		slots: func(deviceID string) slot {
			return &redisSlot{client: kv, key: "cart:guest:" + deviceID, ttl: guestCartTTL}
		},
		logger: logger,
	}
}

// Open binds a session to the actor, performs one full load and returns it.
// Mutations only exist on the returned session, so nothing can mutate a cart
// that has not been loaded. A remote load failure surfaces here; guest slot
// read failures are absorbed and yield an empty session.
func (s *Service) Open(ctx context.Context, actor Actor) (*Cart, error) {
	store, err := s.storeFor(actor)
	if err != nil {
		return nil, err
	}
	c := &Cart{store: store}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) storeFor(actor Actor) (lineStore, error) {
	switch {
	case actor.UserID != "":
		return &remoteStore{repo: s.repo, userID: actor.UserID}, nil
	case actor.DeviceID != "":
		return &localStore{slot: s.slots(actor.DeviceID), logger: s.logger}, nil
	default:
		return nil, ErrNoActor
	}
}
