package rules

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ChessEngine produces standard chess boards.
type ChessEngine struct{}

func NewChessEngine() *ChessEngine {
	return &ChessEngine{}
}

func (e *ChessEngine) NewBoard() Board {
	return &chessBoard{game: nchess.NewGame()}
}

type chessBoard struct {
	game *nchess.Game
}

func (b *chessBoard) ApplyMove(m Move) error {
	uci := strings.ToLower(strings.TrimSpace(m.UCI()))
	if uci == "" {
		return fmt.Errorf("%w: empty move", ErrIllegalMove)
	}

	pos := b.game.Position()
	mv, err := nchess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, uci)
	}
	if err := b.game.Move(mv, nil); err != nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, uci)
	}
	return nil
}

func (b *chessBoard) FEN() string {
	return b.game.FEN()
}

func (b *chessBoard) Outcome() Outcome {
	switch b.game.Outcome() {
	case nchess.WhiteWon:
		return OutcomeWhiteWon
	case nchess.BlackWon:
		return OutcomeBlackWon
	case nchess.Draw:
		return OutcomeDraw
	default:
		return OutcomeNone
	}
}
