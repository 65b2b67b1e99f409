package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"flowershop/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// localStore holds a guest cart: a JSON array of frozen line snapshots in a
// single device-keyed slot, read once and rewritten wholesale after every
// mutation. Slot failures are logged and absorbed; the in-memory line set
// stays authoritative for the session even if persistence silently fails.
type localStore struct {
	slot   slot
	logger *zap.Logger
	loaded bool
	lines  []domain.CartLine
}

func (s *localStore) Load(ctx context.Context) ([]domain.CartLine, error) {
	if !s.loaded {
		s.loaded = true
		data, err := s.slot.Read(ctx)
		if err != nil {
			s.logger.Warn("read guest cart", zap.Error(err))
		} else if len(data) > 0 {
			if err := json.Unmarshal(data, &s.lines); err != nil {
				s.logger.Warn("decode guest cart", zap.Error(err))
				s.lines = nil
			}
		}
	}
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *localStore) UpsertLine(ctx context.Context, p ProductInfo, quantity int) error {
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			return nil
		}
	}
	s.lines = append(s.lines, domain.CartLine{
		ID:           "local-" + uuid.NewString(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductPrice: p.Price,
		ProductImage: p.ImageURL,
		Quantity:     quantity,
	})
	s.persist(ctx)
	return nil
}

func (s *localStore) SetQuantity(ctx context.Context, productID string, quantity int) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

func (s *localStore) DeleteLine(ctx context.Context, productID string) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

func (s *localStore) Clear(ctx context.Context) error {
	s.lines = nil
	if err := s.slot.Delete(ctx); err != nil {
		s.logger.Warn("clear guest cart", zap.Error(err))
	}
	return nil
}

func (s *localStore) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn("encode guest cart", zap.Error(err))
		return
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Warn("write guest cart", zap.Error(err))
	}
}

// redisSlot backs a guest cart slot with one Redis key.
type redisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (r *redisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *redisSlot) Write(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}

func (r *redisSlot) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
