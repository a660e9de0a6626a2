package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// ConnectRedis initializes the Redis client used for report rate limiting.
// It returns false when REDIS_ADDRESS is unset or unreachable; the service
// then runs without rate limiting.
func ConnectRedis() bool {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		return false
	}
	redisPassword := os.Getenv("REDIS_PASSWORD") // set if needed

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0, // default DB
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, report rate limiting disabled")
		return false
	}

	RedisClient = client
	logrus.Info("Connected to Redis")
	return true
}
