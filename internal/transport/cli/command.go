package cli

import (
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-cli/internal/domain"
	"github.com/iamasit07/connect4-cli/internal/service/bot"
)

const (
	ErrUnknownCommand  = domain.Error("unknown command")
	ErrMissingFilename = domain.Error("missing filename")
)

type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdUndo
	CmdReset
	CmdHelp
	CmdReplay
	CmdSave
	CmdLoad
	CmdAI
	CmdList
	CmdExit
)

type Command struct {
	Kind       CommandKind
	Column     int
	Name       string
	Difficulty bot.Difficulty
}

// ParseCommand reads one input line. Keywords are case-insensitive; file
// names keep their case. Numbers are passed through as columns even when out
// of range so the game can reject them.
func ParseCommand(line string, defaultDifficulty bot.Difficulty) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	keyword := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch keyword {
	case "undo":
		return Command{Kind: CmdUndo}, nil
	case "reset":
		return Command{Kind: CmdReset}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "replay":
		return Command{Kind: CmdReplay}, nil
	case "list", "ls":
		return Command{Kind: CmdList}, nil
	case "exit", "quit":
		return Command{Kind: CmdExit}, nil
	case "save":
		return Command{Kind: CmdSave, Name: arg}, nil
	case "load":
		if arg == "" {
			return Command{}, ErrMissingFilename
		}
		return Command{Kind: CmdLoad, Name: arg}, nil
	case "ai":
		difficulty := defaultDifficulty
		if arg != "" {
			difficulty = bot.ParseDifficulty(arg)
		}
		if difficulty == "" {
			difficulty = bot.DifficultyMedium
		}
		return Command{Kind: CmdAI, Difficulty: difficulty}, nil
	}

	if len(fields) == 1 {
		if column, err := strconv.Atoi(keyword); err == nil {
			return Command{Kind: CmdMove, Column: column}, nil
		}
	}
	return Command{}, ErrUnknownCommand
}

const helpText = `Commands:
  0-6             drop a disk in that column
  ai [easy]       let the computer play the current turn
  undo            take back the last move
  reset           start a new game
  replay          show the game move by move (Ctrl-C stops it and quits)
  save [name]     save the game (default save_<millis>.json)
  load <name>     load a saved game
  list            show saved games
  help            show this help
  exit, quit      leave`
