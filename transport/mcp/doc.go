// Package mcp exposes Hare & Hounds to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request to the REST API,
// and the JSON response is rendered as text with an ASCII board. The same
// Client serves both the stdio transport and the /mcp HTTP endpoint.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, describe_cell
//   - move, bulk_move, reset_game
//   - move_history, share_result
//   - list_configs, game_instructions
//
// Tool failures, including REST errors such as an unknown session, are
// returned as tool results with IsError set rather than as protocol errors.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal().Err(err).Msg("mcp server failed")
//	}
package mcp
