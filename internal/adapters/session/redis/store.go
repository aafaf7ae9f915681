package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Store guarda los slots de sesión como claves sueltas en Redis. Sin TTL:
// la sesión dura hasta que alguien la limpia, como el storage del
// navegador.
type Store struct{ rdb *redis.Client }

func New(addr string) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *Store) Save(ctx context.Context, slot string, data []byte) error {
	return s.rdb.Set(ctx, slot, data, 0).Err()
}

func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
