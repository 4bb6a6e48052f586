package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the process and its two backing stores.
// Degraded dependencies flip the status code to 503 so load balancers stop
// routing; the body names which component failed.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		components := gin.H{
			"postgres": pingDB(ctx, db),
			"redis":    pingRedis(ctx, rdb),
		}

		status := http.StatusOK
		for _, v := range components {
			if v != "up" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(status, gin.H{
			"ok":         status == http.StatusOK,
			"components": components,
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "down"
	}
	return "up"
}

func pingRedis(ctx context.Context, rdb *redis.Client) string {
	if rdb.Ping(ctx).Err() != nil {
		return "down"
	}
	return "up"
}
