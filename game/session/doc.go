// Package session provides session management for Hare & Hounds.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - The per-session countdown and its cancellation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns one engine and the mutex that serializes it.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive.
//
// Countdown:
//
// Every session gets a scheduler from the manager's SchedulerFactory. The
// default ticks at the configuration's tick interval on a background
// goroutine that holds the session lock for each tick. Deleting or expiring a
// session cancels its countdown.
//
// Usage:
//
//	manager := session.NewManager(
//		session.WithEventSink(func(id string, ev engine.Event) {
//			hub.BroadcastToSession(id, string(ev.Type), ev.State)
//		}),
//	)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	go manager.RunCleanup(ctx, time.Minute, time.Hour)
package session
