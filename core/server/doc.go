// Package server wraps http.Server with graceful shutdown, option-based
// configuration, and environment variable support.
//
// Typical usage with a cancellation-aware router:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(middleware.Cancellation[*router.Context]()),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Start(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
//		log.Fatal(err)
//	}
//	_ = srv.Stop()
//
// During graceful shutdown, in-flight requests keep their cancellation
// handles; each request still terminates on its own timeout or client
// disconnect even while the server drains.
package server
