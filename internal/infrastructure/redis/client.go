// Package redis implementa los repositorios del catálogo sobre Redis. Cada registro es un
// documento JSON bajo {prefijo}:{tipo}:{id}; los sets de índice permiten contar y vaciar.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/BrandoCommando/product-taxonomy/pkg/config"
)

// NewClient abre el cliente desde REDIS_URL y comprueba la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// keys nombres de claves bajo un prefijo.
type keys struct {
	prefix string
}

func (k keys) property(id string) string { return k.prefix + ":property:" + id }
func (k keys) properties() string        { return k.prefix + ":properties" }
func (k keys) category(id string) string { return k.prefix + ":category:" + id }
func (k keys) categories() string        { return k.prefix + ":categories" }
func (k keys) verticals() string         { return k.prefix + ":verticals" }

// createScript crea el documento solo si no existe y, si se pasa padre, solo si el
// padre existe. Devuelve 1 creado, 0 duplicado, -1 padre inexistente.
//
// KEYS[1] documento, KEYS[2] índice, KEYS[3] documento del padre o "", KEYS[4] índice de verticales o "".
// ARGV[1] id, ARGV[2] payload.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
if KEYS[3] ~= "" and redis.call("EXISTS", KEYS[3]) == 0 then
	return -1
end
redis.call("SET", KEYS[1], ARGV[2])
redis.call("SADD", KEYS[2], ARGV[1])
if KEYS[4] ~= "" then
	redis.call("SADD", KEYS[4], ARGV[1])
end
return 1
`)

// deleteIndexed borra los documentos listados en index y los índices dados.
func deleteIndexed(ctx context.Context, client redis.UniversalClient, index string, docKey func(string) string, extra ...string) error {
	ids, err := client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}
	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, docKey(id))
		}
		pipe.Del(ctx, append([]string{index}, extra...)...)
		return nil
	})
	return err
}
