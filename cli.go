package main

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"mockzork/zork"
)

const banner = "MOCK ZORK\nA small excerpt of the Great Underground Empire.\nType 'help' for commands, 'reset' to start over, 'quit' to leave."

// runConsole drives the cli and headless frontends until the player quits, input
// ends or the game is over.
func runConsole(game *zork.Game, in *lineReader, con *console, logger *zap.Logger) error {
	con.wrapWriteLn(banner)
	st := game.Reset()
	con.showState(st)

	for !st.Done {
		line, err := in.ReadLine("> ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "q":
			con.println()
			con.printf("Final score: %d\n", st.Score)
			return nil
		case "reset", "restart":
			logger.Info("player reset", zap.String("game", game.ID()))
			st = game.Reset()
		default:
			st = game.Step(line)
		}
		con.showState(st)
	}

	con.println()
	con.printf("Final score: %d\n", st.Score)
	return nil
}
