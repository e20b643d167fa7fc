// Package engine provides the core game logic for Hare & Hounds.
//
// The engine package implements the game mechanics including:
//   - Board bounds, hound occupancy and trap detection
//   - Escape route enumeration for the hare
//   - Hound scoring and the sequential, greedy hound turn
//   - The game state machine and its countdown
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is a snapshot of one game, while
// GameConfig defines the time limit and messages loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config,
//		engine.WithScheduler(scheduler),
//		engine.WithListener(func(ev engine.Event) { render(ev.State) }),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the hare
//	accepted := gameEngine.Move(engine.Forward)
//	state := gameEngine.State()
//
// Game Rules:
//
// The hare starts on the bottom row of a 10x10 grid and moves forward, left
// or right one cell per turn. After every hare move the four hounds each take
// one step. The hare wins on reaching row 0. It loses when it lands on a
// hound or a hound lands on it (caught), when all eight surrounding cells are
// walls or hounds (trapped), or when the countdown runs out (timeout).
//
// Concurrency:
//
// GameEngine is not safe for concurrent use. The countdown runs through a
// Scheduler; a real-time scheduler must serialize its callbacks with moves.
// Once a game is over every move and tick is ignored.
package engine
