package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/config"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

type RateLimitRepository interface {
	// Returns isAllowed, attempts left, seconds to wait, error
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
	ResetLoginAttempts(ctx context.Context, email string) error
}

type rateLimitRepository struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &rateLimitRepository{client: client, cfg: cfg, now: time.Now}
}

// NewRateLimitRepoWithClock is NewRateLimitRepo with a fixed time source.
func NewRateLimitRepoWithClock(client redis.Cmdable, cfg config.RateConfig, now func() time.Time) RateLimitRepository {
	return &rateLimitRepository{client: client, cfg: cfg, now: now}
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + email
}

// Sliding window over a sorted set: score is the attempt time in
// milliseconds, member is the attempt time in nanoseconds.
func (r *rateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {

	logger := logging.FromContext(ctx)

	key := loginAttemptsKey(email)
	now := r.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - r.cfg.WindowSize.Milliseconds()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {

		scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(scores) == 0 {
			if err == nil {
				err = errors.New("empty attempt window")
			}
			return false, 0, int(r.cfg.WindowSize.Seconds()), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldestMs := int64(scores[0].Score)
		retryAfterMs := max(oldestMs+r.cfg.WindowSize.Milliseconds()-nowMs, 0)

		logger.Warn("Rate limit exceeded for user", slog.String("email", email), slog.Int64("attempts", attempts))
		return false, 0, int((retryAfterMs + 999) / 1000), nil
	}

	remaining := r.cfg.MaxAttempts - attempts

	logger.Debug("Rate limit check passed", slog.String("email", email), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}

func (r *rateLimitRepository) ResetLoginAttempts(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}

	return nil
}

// SessionRepository persists the one signed-in session of this storefront
// so it survives a restart.
type SessionRepository interface {
	SaveSession(ctx context.Context, token string, ttl time.Duration) error
	LoadSession(ctx context.Context) (string, bool, error)
	DeleteSession(ctx context.Context) error
}

type sessionRepository struct {
	client redis.Cmdable
	key    string
}

func NewSessionRepo(client redis.Cmdable, namespace string) SessionRepository {
	return &sessionRepository{client: client, key: "session:" + namespace}
}

func (r *sessionRepository) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Set(redisCtx, r.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) LoadSession(ctx context.Context) (string, bool, error) {
	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	token, err := r.client.Get(redisCtx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load session: %w", err)
	}

	return token, true, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context) error {
	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Del(redisCtx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
