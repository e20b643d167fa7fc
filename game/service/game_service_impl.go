package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/hare-hounds/game/engine"
)

// DefaultShareURL is advertised in share messages when the caller gives none
const DefaultShareURL = "http://localhost:8080"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	return configName
}

// session looks up a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("session '%s': %w", sessionID, ErrSessionNotFound)
		}
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}

	sess.Lock()
	defer sess.Unlock()

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.State(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	config, err := s.resolveConfig(configName)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("session", sess.ID).Str("config", config.Name).Msg("session created")
	return s.sessionInfo(sess, strings.TrimSuffix(configName, ".json")), nil
}

// OpenSession returns the session with a client-chosen ID, creating it from
// configName when it does not exist yet. configName is ignored for an
// existing session but must still name a known config.
func (s *gameServiceImpl) OpenSession(ctx context.Context, sessionID, configName string) (*SessionInfo, error) {
	config, err := s.resolveConfig(configName)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.GetOrCreate(sessionID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sess.ID)

	log.Info().Str("session", sess.ID).Str("config", sess.Config.Name).Msg("session opened")
	return s.sessionInfo(sess, ""), nil
}

// resolveConfig loads the named config, or the default one when name is
// empty. An unknown name lists the available configs in the error.
func (s *gameServiceImpl) resolveConfig(configName string) (*engine.GameConfig, error) {
	if configName == "" {
		return s.configs.GetDefault(), nil
	}

	config, err := s.configs.LoadConfig(configName)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
	}

	availableConfigs, listErr := s.configs.ListConfigs()
	if listErr == nil && len(availableConfigs) > 0 {
		var configIDs []string
		for _, cfg := range availableConfigs {
			configIDs = append(configIDs, cfg.ConfigID)
		}
		return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
	}
	return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	sortSessions(result)
	return result, nil
}

// DeleteSession removes a session and stops its countdown
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("session '%s': %w", sessionID, ErrSessionNotFound)
		}
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Move executes a single hare move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	before := sess.Engine.State()
	accepted := sess.Engine.Move(dir)
	state := sess.Engine.State()

	result := &MoveResult{
		Accepted:  accepted,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if accepted {
		result.Events = append(result.Events, extractMoveEvents(before, state, dir)...)
		step := stepInfo(1, dir, before, state)
		result.Step = &step
	} else {
		result.AttemptedTo = attemptInfo(before, dir)
		result.Message = rejectionMessage(result.AttemptedTo, state)
	}

	log.Debug().
		Str("session", sess.ID).
		Str("direction", string(dir)).
		Bool("accepted", accepted).
		Str("status", string(state.Status)).
		Int("turn", state.Turn).
		Msg("move")

	return result, nil
}

// BulkMove executes moves in order until one is rejected or the game ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Accepted:       true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	if len(moves) > MaxBulkMoves {
		result.Truncated = true
		result.Limit = MaxBulkMoves
		moves = moves[:MaxBulkMoves]
	}

	result.StartPos = sess.Engine.State().Hare

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StopReasonCode = "game_over"
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Accepted = false
			result.StopReasonCode = "invalid_direction"
			result.StoppedOnMove = i + 1
			break
		}

		before := sess.Engine.State()
		if !sess.Engine.Move(dir) {
			result.Accepted = false
			result.AttemptedTo = attemptInfo(before, dir)
			result.StopReasonCode = result.AttemptedTo.Reason
			result.StoppedOnMove = i + 1
			break
		}

		after := sess.Engine.State()
		result.MovesExecuted++
		result.Events = append(result.Events, extractMoveEvents(before, after, dir)...)
		result.Steps = append(result.Steps, stepInfo(i+1, dir, before, after))
	}

	state := sess.Engine.State()
	result.GameState = state
	result.EndPos = state.Hare
	result.GameOver = state.IsOver()
	result.Message = state.Message

	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = outcomeCode(state)
	}

	log.Debug().
		Str("session", sess.ID).
		Int("requested", result.RequestedMoves).
		Int("executed", result.MovesExecuted).
		Str("stop", result.StopReasonCode).
		Msg("bulk move")

	return result, nil
}

// Reset starts a new game in the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.Reset(), nil
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.State(), nil
}

// GetMoveHistory returns paginated move history of the current game
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	history := sess.Engine.GetMoveHistory()
	sess.Unlock()

	return paginate(history, opts), nil
}

// ShareResult builds the share text for the session's current game
func (s *gameServiceImpl) ShareResult(ctx context.Context, sessionID, player, url string) (*ShareResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	state := sess.Engine.State()
	sess.Unlock()

	if url == "" {
		url = DefaultShareURL
	}
	player = strings.TrimSpace(player)
	if player == "" {
		player = engine.AnonymousPlayer
	}

	return &ShareResult{
		SessionID: sess.ID,
		Player:    player,
		Status:    state.Status,
		Message:   engine.ShareMessage(state, sess.Config, player, url),
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	log.Info().Str("config", configName).Msg("config saved")
	return nil
}

func parseDirection(direction string) (engine.Direction, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return "", fmt.Errorf("%w: '%s' (use left, right or forward)", engine.ErrInvalidDirection, direction)
	}
	return dir, nil
}

func paginate(history []engine.MoveRecord, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveRecord{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
