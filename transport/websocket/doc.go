// Package websocket provides WebSocket transport for Hare & Hounds.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Push of every engine event, countdown ticks included
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection has a read and a write
// goroutine; the hub's Run loop handles registration.
//
// Message Protocol:
//
// The connection is one-way. Every outgoing message is a single JSON frame:
//
//	{"session_id": "ab12", "event": "tick", "game_state": {...}}
//
// where event is one of move, tick, reset or game_over. Moves are sent
// through the REST API or MCP, never over the socket.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	sessions := session.NewManager(session.WithEventSink(
//		func(id string, ev engine.Event) {
//			hub.BroadcastToSession(id, string(ev.Type), ev.State)
//		}))
//
// Concurrency:
//
// Broadcasts are safe from any goroutine and never block: a client whose
// buffer is full is disconnected.
package websocket
