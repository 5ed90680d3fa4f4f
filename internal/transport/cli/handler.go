package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/domain"
	"github.com/iamasit07/connect4-cli/internal/service/bot"
	"github.com/iamasit07/connect4-cli/internal/service/game"
)

const clearSequence = "\033[H\033[2J"

type Options struct {
	Difficulty     bot.Difficulty
	ExitOnGameOver bool
	ClearScreen    bool
	Color          bool
}

// Handler runs the read-eval-print loop over a game service.
type Handler struct {
	svc      *game.Service
	in       io.Reader
	out      io.Writer
	opts     Options
	renderer *Renderer
	logger   *zap.Logger
}

func NewHandler(svc *game.Service, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = bot.DifficultyMedium
	}
	return &Handler{
		svc:      svc,
		in:       in,
		out:      out,
		opts:     opts,
		renderer: NewRenderer(opts.Color),
		logger:   logger.Named("cli"),
	}
}

// Run reads commands until exit, end of input, a cancelled context, or the end
// of the game when ExitOnGameOver is set.
func (h *Handler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	h.showBoard()
	for {
		if h.svc.Snapshot().IsFinished() && h.opts.ExitOnGameOver {
			return nil
		}
		h.prompt()

		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return nil
		case err := <-readErr:
			fmt.Fprintln(h.out)
			return err
		case line := <-lines:
			if quit := h.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

// Execute handles one input line and reports whether the session should end.
// Blank lines are ignored.
func (h *Handler) Execute(ctx context.Context, line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	cmd, err := ParseCommand(line, h.opts.Difficulty)
	if err != nil {
		h.report(err, "")
		return false
	}

	switch cmd.Kind {
	case CmdMove:
		out, err := h.svc.Play(cmd.Column)
		h.afterMove(out, err)
	case CmdAI:
		out, err := h.svc.PlayAgent(cmd.Difficulty)
		if err == nil && out.Move != nil {
			h.println(fmt.Sprintf("Computer plays column %d", out.Move.Col))
		}
		h.afterMove(out, err)
	case CmdUndo:
		if _, err := h.svc.Undo(); err != nil {
			h.report(err, "")
			return false
		}
		h.showBoard()
		h.println("Last move undone")
	case CmdReset:
		h.svc.Reset()
		h.showBoard()
		h.println("New game")
	case CmdSave:
		out, err := h.svc.Save(ctx, cmd.Name)
		if err != nil {
			h.report(err, cmd.Name)
			return false
		}
		h.println("Game saved to " + out.Location)
	case CmdLoad:
		out, err := h.svc.Load(ctx, cmd.Name)
		if err != nil {
			h.report(err, cmd.Name)
			return false
		}
		h.showBoard()
		h.println("Game loaded from " + cmd.Name)
		h.announce(out)
	case CmdList:
		out, err := h.svc.List(ctx)
		if err != nil {
			h.report(err, "")
			return false
		}
		if len(out.Names) == 0 {
			h.println("No saved games")
			return false
		}
		h.println("Saved games:\n  " + strings.Join(out.Names, "\n  "))
	case CmdReplay:
		h.replay(ctx)
	case CmdHelp:
		h.println(helpText)
	case CmdExit:
		h.println("Bye")
		return true
	}
	return false
}

func (h *Handler) afterMove(out game.Outcome, err error) {
	if err != nil {
		h.report(err, "")
		return
	}
	h.showBoard()
	h.announce(out)
}

func (h *Handler) announce(out game.Outcome) {
	switch out.Status {
	case domain.StatusWon:
		h.println(fmt.Sprintf("Player %s wins!", h.renderer.Player(out.Winner)))
	case domain.StatusDraw:
		h.println("Draw!")
	}
}

func (h *Handler) replay(ctx context.Context) {
	total := h.svc.Snapshot().MoveCount()
	if total == 0 {
		h.println("Nothing to replay")
		return
	}
	err := h.svc.Replay(ctx, func(ply int, board domain.Board) {
		h.clear()
		fmt.Fprint(h.out, h.renderer.Board(board, nil))
		h.println(fmt.Sprintf("Move %d/%d", ply, total))
	})
	if err != nil {
		h.logger.Debug("replay interrupted", zap.Error(err))
		h.println("Replay interrupted")
		return
	}
	h.showBoard()
}

// report turns an error into a message for the player. None of them end the
// session.
func (h *Handler) report(err error, name string) {
	var msg string
	switch {
	case errors.Is(err, ErrUnknownCommand):
		msg = "Unknown command, type help for the list"
	case errors.Is(err, ErrMissingFilename):
		msg = "Missing filename: load <name>"
	case errors.Is(err, domain.ErrInvalidColumn):
		msg = fmt.Sprintf("Invalid column, choose 0-%d", domain.Columns-1)
	case errors.Is(err, domain.ErrColumnFull):
		msg = "Column is full"
	case errors.Is(err, domain.ErrGameOver):
		msg = "The game is over, use undo or reset"
	case errors.Is(err, domain.ErrNothingToUndo):
		msg = "Nothing to undo"
	case errors.Is(err, domain.ErrHistoryMismatch):
		msg = "History does not match the board, undo refused"
	case errors.Is(err, domain.ErrSaveNotFound):
		msg = "No save named " + name
	case errors.Is(err, domain.ErrInvalidSaveName):
		msg = fmt.Sprintf("Invalid save name %q", name)
	case errors.Is(err, domain.ErrInvalidSave):
		msg = "Invalid save file: " + err.Error()
	default:
		h.logger.Error("command failed", zap.Error(err))
		msg = "Error: " + err.Error()
	}
	h.println(msg)
}

func (h *Handler) showBoard() {
	snap := h.svc.Snapshot()
	h.clear()
	fmt.Fprint(h.out, h.renderer.Board(snap.Board, snap.WinningLine()))
}

func (h *Handler) prompt() {
	current := h.svc.Snapshot().CurrentPlayer
	fmt.Fprintf(h.out, "Player %s (col/ai/save/load/undo/help): ", h.renderer.Player(current))
}

func (h *Handler) clear() {
	if h.opts.ClearScreen {
		fmt.Fprint(h.out, clearSequence)
	}
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}
