package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func ConnectRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// PutText stores an article's raw text under its content-address key.
// A key that already holds a value is not an error: the text is content
// addressed, so a second write of the same article is a no-op and the
// existing path is returned with created=false.
func PutText(ctx context.Context, key string, text string) (string, bool, error) {
	created, err := Redis.SetNX(ctx, key, text, 0).Result()
	if err != nil {
		return "", false, fmt.Errorf("blob put %s: %w", key, err)
	}
	return key, created, nil
}

// GetText downloads an article's raw text by its stored path.
func GetText(ctx context.Context, path string) (string, error) {
	text, err := Redis.Get(ctx, path).Result()
	if err != nil {
		return "", fmt.Errorf("blob get %s: %w", path, err)
	}
	return text, nil
}

// Blobs adapts the package-level blob helpers to the pipeline
// interfaces.
type Blobs struct{}

func (Blobs) PutText(ctx context.Context, key string, text string) (string, bool, error) {
	return PutText(ctx, key, text)
}

func (Blobs) GetText(ctx context.Context, path string) (string, error) {
	return GetText(ctx, path)
}
