// Package shutdown coordinates process termination for tokmint-server.
//
// SIGINT and SIGTERM run the registered shutdown hooks in reverse order
// under a timeout. SIGHUP runs the reload callbacks instead.
//
// Usage:
//
//	h := shutdown.NewHandler(15 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	h.OnReload(reloader.Reload)
//	err := h.Wait()
package shutdown
