// Package pg provides PostgreSQL connectivity via pgx connection pools
// with retry logic on connect and a readiness probe helper.
//
// Connect parses the connection string, applies pool limits from Config,
// and verifies the connection with a ping before returning:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
// Healthcheck wraps a pool into a probe function for readiness endpoints:
//
//	router.Get("/health/ready", health.Readiness[*router.Context](
//		logger, 2*time.Second,
//		pg.Healthcheck(pool),
//	))
package pg
