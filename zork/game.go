package zork

import (
	"strings"

	"go.uber.org/zap"
)

const (
	textGameOver     = "The game is over."
	textMaxMoves     = "You have exceeded the maximum number of moves."
	textGrueWarning  = "It is pitch black. You are likely to be eaten by a grue.\n\n"
	textEatenByGrue  = "Oh, no! You have walked into the slavering fangs of a lurking grue!\n\n***** You have died *****"
	grueMentionToken = "grue"
)

// Reset discards all mutable state, restores the world's initial configuration and
// returns the opening snapshot.
//
// Postcondition: moves and score are 0, done is false and the player is at the start location.
func (g *Game) Reset() GameState {
	g.initState()
	g.logger.Debug("game reset",
		zap.String("game", g.id),
		zap.String("location", g.location),
	)
	return g.snapshot(g.Describe())
}

// Step interprets one line of player input and advances the game by one move.
// Once the game is over Step is a no-op that reports "The game is over.".
func (g *Game) Step(input string) GameState {
	if g.done {
		return g.snapshot(textGameOver)
	}

	g.moves++
	if g.moves >= MaxMoves {
		g.done = true
		g.logger.Info("game over",
			zap.String("game", g.id),
			zap.String("reason", "move limit"),
			zap.Int("score", g.score),
			zap.Int("moves", g.moves),
		)
		return g.snapshot(textMaxMoves)
	}

	cmd := Parse(input, g.isExit)
	result := g.execute(cmd)
	result = g.checkGrue(result)

	g.logger.Debug("step",
		zap.String("game", g.id),
		zap.String("command", input),
		zap.Stringer("kind", cmd.Kind),
		zap.Int("moves", g.moves),
		zap.String("location", g.location),
	)
	if g.done {
		g.logger.Info("game over",
			zap.String("game", g.id),
			zap.String("reason", "grue"),
			zap.Int("score", g.score),
			zap.Int("moves", g.moves),
		)
	}
	return g.snapshot(result)
}

// checkGrue applies the darkness hazard after a command has run. The death roll uses
// the global move counter.
func (g *Game) checkGrue(result string) string {
	if !g.IsDark() {
		return result
	}
	switch {
	case !g.grueWarned && !strings.Contains(result, grueMentionToken):
		g.grueWarned = true
		return textGrueWarning + result
	case g.grueWarned && g.moves%GruePeriod == 0:
		g.done = true
		return textEatenByGrue
	}
	return result
}

// isExit reports whether word names an exit of the current location.
func (g *Game) isExit(word string) bool {
	loc := g.world.Location(g.location)
	if loc == nil {
		return false
	}
	_, ok := loc.exit(word)
	return ok
}
