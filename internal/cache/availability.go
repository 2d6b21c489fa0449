package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// TTL curto: o resultado do engine é determinístico para um snapshot,
// então servir uma resposta de até um minuto atrás é aceitável e o
// invalidate explícito cobre as escritas do próprio sistema.
const availabilityTTL = 60 * time.Second

type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb}
}

func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	return redis.NewClient(opts)
}

func key(barberID uint, from, to string, durationMin int) string {
	return fmt.Sprintf("avail:%d:%s:%s:%d", barberID, from, to, durationMin)
}

// Get retorna (nil, false) em miss ou erro: cache nunca derruba a API.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	barberID uint,
	from, to string,
	durationMin int,
) ([]schedule.DayAvailability, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(barberID, from, to, durationMin)).Bytes()
	if err != nil {
		return nil, false
	}

	var days []schedule.DayAvailability
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	barberID uint,
	from, to string,
	durationMin int,
	days []schedule.DayAvailability,
) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(barberID, from, to, durationMin), raw, availabilityTTL).Err(); err != nil {
		log.Println("availability cache set error:", err)
	}
}

// InvalidateBarber apaga todas as entradas do barbeiro. Chamado em toda
// escrita que muda a agenda: expediente, pausa, folga, override,
// criação/cancelamento de agendamento.
func (c *AvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*", barberID)

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("availability cache invalidate error:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("availability cache scan error:", err)
	}
}
