package infrastructures

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisOptions builds client options from the loaded configuration.
func RedisOptions() *redis.Options {
	if Config == nil {
		LoadConfig()
	}
	return &redis.Options{
		Addr:     Config.REDIS_ADDRESS,
		Password: Config.REDIS_PASSWORD,
		DB:       0, // use default DB
	}
}

func NewRedisClient() *redis.Client {
	client := redis.NewClient(RedisOptions())

	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect redis: %v", err)
	}

	return client
}
