// Package redis connects the optional shared Redis backend used by the
// catalog cache and the HTTP session store.
//
// Redis is disabled when REDIS_URL is empty; callers check Config.Enabled
// before calling Connect and fall back to in-memory backends otherwise.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect retries the initial ping up to RetryAttempts times, waiting
// RetryInterval between attempts, and gives up after ConnectTimeout.
// Healthcheck builds a readiness probe for httpserver.ReadinessHandler.
//
// Errors are sentinel values joined with the driver error, so errors.Is works
// against both.
package redis
