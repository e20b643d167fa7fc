// Package service provides the business logic layer for Hare & Hounds.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration loading through a ConfigManager
//   - Move processing, single and bulk
//   - Move history paging and result sharing
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine and a mutex; the service holds
// that mutex around every engine call, and the session's countdown takes the
// same mutex for each tick.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "blitz")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, "forward", false)
//
//	// reattach to a session by a client-chosen ID, creating it if needed
//	sessionInfo, err = gameService.OpenSession(ctx, "robin", "blitz")
//
// Errors:
//
// Lookups of unknown sessions wrap ErrSessionNotFound, unknown configurations
// wrap ErrConfigNotFound, malformed client session IDs wrap
// ErrInvalidSessionID and unparseable directions wrap
// engine.ErrInvalidDirection, so transports can map them with errors.Is.
package service
