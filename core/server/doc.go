// Package server runs an http.Handler with production timeouts and
// graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run returns a function suited to errgroup: it serves until ctx is
// cancelled, then shuts down within the configured timeout. TLS is served
// when the config names a certificate and key file.
package server
