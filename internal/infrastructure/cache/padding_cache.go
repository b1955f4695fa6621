// Package cache guarda en Redis los candidatos de relleno por (empresa, proveedor, local).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appstock "github.com/jhoicas/hospitality-ops-api/internal/application/stock"
	domainstock "github.com/jhoicas/hospitality-ops-api/internal/domain/stock"
	"github.com/jhoicas/hospitality-ops-api/pkg/config"
)

const (
	keyPrefix     = "padding"
	allSites      = "all"
	scanBatchSize = 100
)

var _ appstock.CandidateCache = (*RedisCandidateCache)(nil)

// RedisCandidateCache implementa CandidateCache sobre go-redis.
type RedisCandidateCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisClient abre el cliente y comprueba la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisCandidateCache construye la caché. El cliente sigue siendo del llamador.
func NewRedisCandidateCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCandidateCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisCandidateCache{client: client, ttl: ttl, log: log}
}

// Get devuelve (candidatos, true) en acierto y (nil, false) en fallo de caché.
func (c *RedisCandidateCache) Get(ctx context.Context, companyID, supplierID, siteID string) ([]domainstock.Candidate, bool, error) {
	raw, err := c.client.Get(ctx, candidateKey(companyID, supplierID, siteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	out, err := decodeCandidates(raw)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Set guarda los candidatos con el TTL configurado.
func (c *RedisCandidateCache) Set(ctx context.Context, companyID, supplierID, siteID string, candidates []domainstock.Candidate) error {
	raw, err := encodeCandidates(candidates)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, candidateKey(companyID, supplierID, siteID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra las entradas del proveedor en todos los locales (SCAN + DEL).
func (c *RedisCandidateCache) Invalidate(ctx context.Context, companyID, supplierID string) error {
	pattern := fmt.Sprintf("%s:%s:%s:*", keyPrefix, companyID, supplierID)
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.log.Debug().Str("supplier_id", supplierID).Int("keys", deleted).Msg("caché de relleno invalidada")
	return nil
}

func candidateKey(companyID, supplierID, siteID string) string {
	if siteID == "" {
		siteID = allSites
	}
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, companyID, supplierID, siteID)
}

// cachedCandidate forma serializada de domainstock.Candidate.
type cachedCandidate struct {
	StockItemID     string           `json:"id"`
	Name            string           `json:"name"`
	Unit            string           `json:"unit"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	ParLevel        decimal.Decimal  `json:"par"`
	ReorderPoint    decimal.Decimal  `json:"reorder"`
	CurrentQuantity decimal.Decimal  `json:"qty"`
	ShelfLifeDays   *int             `json:"shelf_life_days,omitempty"`
	IsPerishable    bool             `json:"perishable"`
	AvgDailyUsage   decimal.Decimal  `json:"avg_daily_usage"`
}

func encodeCandidates(in []domainstock.Candidate) ([]byte, error) {
	out := make([]cachedCandidate, len(in))
	for i, c := range in {
		out[i] = cachedCandidate(c)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("cache: serializar candidatos: %w", err)
	}
	return raw, nil
}

func decodeCandidates(raw []byte) ([]domainstock.Candidate, error) {
	var in []cachedCandidate
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("cache: candidatos corruptos: %w", err)
	}
	out := make([]domainstock.Candidate, len(in))
	for i, c := range in {
		out[i] = domainstock.Candidate(c)
	}
	return out, nil
}
