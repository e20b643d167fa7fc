// Package api provides the HTTP REST API for Hare & Hounds.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "blitz"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/summary - Outcome counts across sessions (?config=ID)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session and stop its countdown
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - {"direction": "forward|left|right", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["forward", "left"], "reset": false}
//   - POST /api/sessions/{id}/reset - Start a new game in the session
//   - GET /api/sessions/{id}/history - Paginated moves (?page=1&limit=20&order=desc)
//   - POST /api/sessions/{id}/share - {"player": "Robin", "url": "..."}
//
// Configuration:
//   - GET /api/configs - List configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get one configuration
//
// Other:
//   - GET /health - Liveness check
//   - GET /ws?session={id} - WebSocket stream of engine events
//
// A rejected move is not an HTTP error: the response has accepted=false and,
// where it applies, attempted_to describing the target cell.
//
// Errors are returned as JSON:
//
//	{"error": "session not found"}
//
// Unknown sessions and configurations map to 404, invalid directions and
// configurations to 400, anything else to 500.
package api
