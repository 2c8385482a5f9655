// Package redis provides Redis client initialization and health checking.
//
// Connect validates the URL scheme (redis:// or rediss://), builds a go-redis
// client and waits for a successful PING using exponential backoff, bounded
// by ConnectTimeout:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck wraps PING for readiness probes.
//
// Environment variables: REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL,
// REDIS_CONNECT_TIMEOUT and REDIS_KEY_PREFIX (namespace for keys written by
// stores built on this client).
//
// Errors: ErrEmptyConnectionURL, ErrInvalidConnectionURL,
// ErrNotReady and ErrHealthcheckFailed, all matchable with errors.Is.
package redis
