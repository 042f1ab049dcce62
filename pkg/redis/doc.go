// Package redis opens the go-redis client used by the upload workspace when
// several web instances share state.
//
// Open validates the URL (redis:// or rediss://), applies pool settings and
// pings the server, retrying with a growing delay before giving up:
//
//	client, err := redis.Open(ctx, cfg.RedisURL,
//		redis.WithRetry(3, time.Second),
//		redis.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
// Healthcheck adapts the client to the readiness probe and Shutdown to the
// server's shutdown hooks.
package redis
