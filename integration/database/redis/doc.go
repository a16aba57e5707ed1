// Package redis provides Redis connectivity with retry logic on connect
// and a readiness probe helper.
//
// Connect parses the connection URL and verifies the server with a ping
// before returning:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck wraps a client into a probe function for readiness endpoints:
//
//	router.Get("/health/ready", health.Readiness[*router.Context](
//		logger, 2*time.Second,
//		redis.Healthcheck(client),
//	))
package redis
