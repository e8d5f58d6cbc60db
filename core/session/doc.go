// Package session maps a session cookie to server-side state shared across
// requests from the same client.
//
// A Manager owns a Store and resolves sessions for the dispatcher. A request
// without a valid SESSION_ID cookie gets a new 24-character alphanumeric id,
// an empty session registered in the store, and a Set-Cookie directive on the
// response:
//
//	manager := session.NewManager(session.NewMemoryStore())
//
//	resp := response.New()
//	sess, err := manager.Resolve(ctx, req.Cookies, resp)
//	if err != nil {
//		return err
//	}
//	sess.Set("visits", 1)
//
// The lookup-or-create sequence runs under a single manager lock, so racing
// requests without a cookie each get their own fully initialized session.
// Values inside a session are guarded by a per-session lock.
//
// # Stores
//
// MemoryStore returns the stored *Session itself, so changes made by a handler
// are visible to later requests without a save step. Persistent stores (see
// integration/database/redis and integration/database/mongo) load copies and
// are written back by Manager.Save after each request. Save skips sessions
// that were not modified.
//
// # Expiry
//
// Sessions never expire by default. WithTTL enables expiry: expired sessions
// are replaced on their next request and removed in bulk by Cleanup, which
// Run calls periodically:
//
//	manager := session.NewManager(store,
//		session.WithTTL(24*time.Hour),
//		session.WithCleanupInterval(time.Hour),
//	)
//	g.Go(manager.Run(ctx))
package session
