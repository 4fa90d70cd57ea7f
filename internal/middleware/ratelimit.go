package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"palcolivre/api/internal/config"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AuthRateLimit throttles credential endpoints per client IP. Disabled in
// development so local testing is not slowed down.
// Stale entries are swept every sweepEvery requests instead of on each hit,
// so a single login attempt never pays for a full map scan.
const sweepEvery = 256

func AuthRateLimit(cfg *config.AppConfig) gin.HandlerFunc {
	clients := make(map[string]*clientLimiter)
	var (
		mu   sync.Mutex
		hits int
	)

	interval := cfg.RateLimit.AuthInterval
	if interval <= 0 {
		interval = time.Minute
	}
	burst := cfg.RateLimit.AuthBurst
	if burst <= 0 {
		burst = 5
	}

	return func(c *gin.Context) {
		if cfg.Environment != "production" {
			c.Next()
			return
		}

		ip := c.ClientIP()

		mu.Lock()
		client, exists := clients[ip]
		if !exists {
			client = &clientLimiter{
				limiter: rate.NewLimiter(rate.Every(interval), burst),
			}
			clients[ip] = client
		}
		client.lastSeen = time.Now()

		hits++
		if hits%sweepEvery == 0 {
			for ip, client := range clients {
				if time.Since(client.lastSeen) > time.Hour {
					delete(clients, ip)
				}
			}
		}
		allowed := client.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "muitas tentativas, aguarde um momento"})
			return
		}

		c.Next()
	}
}
