package service

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChatRateLimiter decide si un cliente puede enviar otro mensaje al chat.
// Si no puede, devuelve cuanto falta para que se abra la ventana.
type ChatRateLimiter interface {
	Allow(ctx context.Context, clientIP string) (retryAfter time.Duration, ok bool)
}

// Ventana fija por cliente. Devuelve 0 si el mensaje entra en el cupo,
// o los milisegundos que faltan para que expire la ventana.
const chatWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current <= tonumber(ARGV[2]) then
  return 0
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return ttl
`

type redisChatRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisChatRateLimiter devuelve nil si no hay cliente o el limite es 0 (limitador apagado).
func NewRedisChatRateLimiter(client *redis.Client, window time.Duration, max int) ChatRateLimiter {
	if client == nil || max <= 0 {
		return nil
	}
	if window < time.Second {
		window = time.Minute
	}
	return &redisChatRateLimiter{client: client, window: window, max: max}
}

func (l *redisChatRateLimiter) Allow(ctx context.Context, clientIP string) (time.Duration, bool) {
	if l == nil || l.client == nil {
		return 0, true
	}
	key := chatRateKey(clientIP)
	if key == "" {
		return 0, true
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	ms, err := l.client.Eval(ctx, chatWindowScript, []string{key}, l.window.Milliseconds(), l.max).Int64()
	if err != nil || ms <= 0 {
		return 0, true
	}
	return time.Duration(ms) * time.Millisecond, false
}

// chatRateKey agrupa IPv6 por su /64 para que un cliente no rote direcciones dentro de su red.
func chatRateKey(clientIP string) string {
	raw := strings.TrimSpace(clientIP)
	if raw == "" {
		return ""
	}
	ip := net.ParseIP(raw)
	switch {
	case ip == nil:
		return "chat:rl:raw:" + strings.ToLower(raw)
	case ip.To4() != nil:
		return "chat:rl:v4:" + ip.To4().String()
	default:
		return "chat:rl:v6:" + ip.Mask(net.CIDRMask(64, 128)).String() + "/64"
	}
}
