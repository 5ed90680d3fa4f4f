package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/domain"
	"github.com/iamasit07/connect4-cli/internal/service/bot"
	"github.com/iamasit07/connect4-cli/pkg/uid"
)

// Store persists encoded games under a name. Missing entries are reported as
// domain.ErrSaveNotFound.
type Store interface {
	Save(ctx context.Context, name string, payload []byte) (string, error)
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// Outcome describes the game after an operation, for the caller to report.
type Outcome struct {
	Move        *domain.Move
	Status      domain.GameStatus
	Current     domain.PlayerID
	Winner      domain.PlayerID
	WinningLine []domain.Position
	Location    string
	Names       []string
}

// Service owns the single live game and everything that acts on it.
type Service struct {
	game        *domain.Game
	gameID      string
	store       Store
	agent       *bot.Agent
	replayDelay time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(store Store, agent *bot.Agent, replayDelay time.Duration, logger *zap.Logger) *Service {
	if agent == nil {
		agent = bot.NewAgent(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		game:        domain.NewGame(),
		gameID:      uid.GenerateGameID(),
		store:       store,
		agent:       agent,
		replayDelay: replayDelay,
		logger:      logger.Named("session"),
		now:         time.Now,
	}
}

func (s *Service) GameID() string {
	return s.gameID
}

// Snapshot returns a copy of the live game. Changing it has no effect on the
// service.
func (s *Service) Snapshot() *domain.Game {
	return s.game.Clone()
}

func (s *Service) Play(column int) (Outcome, error) {
	move, err := s.game.MakeMove(column)
	if err != nil {
		s.logger.Debug("move rejected", zap.Int("column", column), zap.Error(err))
		return s.outcome(nil), err
	}

	s.logger.Info("move played",
		zap.String("game_id", s.gameID),
		zap.Int("column", move.Col),
		zap.Int("row", move.Row),
		zap.Stringer("player", move.Player),
	)
	if s.game.IsFinished() {
		s.logger.Info("game finished",
			zap.String("game_id", s.gameID),
			zap.String("status", string(s.game.Status)),
			zap.Stringer("winner", s.game.Winner),
			zap.Int("moves", s.game.MoveCount()),
		)
	}
	return s.outcome(&move), nil
}

// PlayAgent lets the agent move for whoever is to play.
func (s *Service) PlayAgent(difficulty bot.Difficulty) (Outcome, error) {
	if s.game.IsFinished() {
		return s.outcome(nil), domain.ErrGameOver
	}
	column := s.agent.ChooseColumn(&s.game.Board, s.game.CurrentPlayer, difficulty)
	if column == bot.NoMove {
		return s.outcome(nil), domain.ErrColumnFull
	}
	s.logger.Debug("agent chose column",
		zap.Int("column", column),
		zap.String("difficulty", string(difficulty)),
		zap.Stringer("player", s.game.CurrentPlayer),
	)
	return s.Play(column)
}

func (s *Service) Undo() (Outcome, error) {
	move, err := s.game.Undo()
	if err != nil {
		if errors.Is(err, domain.ErrHistoryMismatch) {
			s.logger.Warn("history does not match board, undo refused", zap.String("game_id", s.gameID))
		}
		return s.outcome(nil), err
	}
	s.logger.Info("move undone", zap.Int("column", move.Col), zap.Int("row", move.Row))
	return s.outcome(&move), nil
}

func (s *Service) Reset() Outcome {
	s.game.Reset()
	s.gameID = uid.GenerateGameID()
	s.logger.Info("game reset", zap.String("game_id", s.gameID))
	return s.outcome(nil)
}

// Save encodes the live game and hands it to the store. An empty name picks a
// timestamped default.
func (s *Service) Save(ctx context.Context, name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	now := s.now()
	if name == "" {
		name = uid.DefaultSaveName(now)
	}

	payload, err := domain.EncodeState(s.game, domain.SaveMeta{GameID: s.gameID, SavedAt: now})
	if err != nil {
		return s.outcome(nil), fmt.Errorf("encode game: %w", err)
	}
	location, err := s.store.Save(ctx, name, payload)
	if err != nil {
		return s.outcome(nil), err
	}

	out := s.outcome(nil)
	out.Location = location
	return out, nil
}

// Load replaces the live game with a saved one. Nothing changes unless the
// payload was read and validated completely.
func (s *Service) Load(ctx context.Context, name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.outcome(nil), domain.ErrInvalidSaveName
	}

	payload, err := s.store.Load(ctx, name)
	if err != nil {
		return s.outcome(nil), err
	}
	loaded, meta, err := domain.DecodeState(payload)
	if err != nil {
		s.logger.Warn("rejected save", zap.String("name", name), zap.Error(err))
		return s.outcome(nil), err
	}

	if !loaded.IsConsistent() {
		s.logger.Warn("loaded history does not replay to the saved board", zap.String("name", name))
	}

	s.game = loaded
	s.gameID = meta.GameID
	if s.gameID == "" {
		s.gameID = uid.GenerateGameID()
	}
	s.logger.Info("game loaded",
		zap.String("name", name),
		zap.String("game_id", s.gameID),
		zap.Int("moves", loaded.MoveCount()),
	)
	return s.outcome(nil), nil
}

func (s *Service) List(ctx context.Context) (Outcome, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return s.outcome(nil), err
	}
	out := s.outcome(nil)
	out.Names = names
	return out, nil
}

// Replay calls frame with the board after each recorded move, pausing between
// frames. It works on a copy of the history, so the live game is never touched.
// A cancelled context stops the replay early and its error is returned.
func (s *Service) Replay(ctx context.Context, frame func(ply int, board domain.Board)) error {
	history := s.game.Clone().History

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	first := true
	for ply, board := range history.Replay() {
		if !first && s.replayDelay > 0 {
			if timer == nil {
				timer = time.NewTimer(s.replayDelay)
			} else {
				timer.Reset(s.replayDelay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		first = false
		frame(ply, board)
	}
	return nil
}

func (s *Service) outcome(move *domain.Move) Outcome {
	return Outcome{
		Move:        move,
		Status:      s.game.Status,
		Current:     s.game.CurrentPlayer,
		Winner:      s.game.Winner,
		WinningLine: s.game.WinningLine(),
	}
}
