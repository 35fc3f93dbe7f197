package ws

const (
	// client - server
	MsgJoinGame = "join_game"
	MsgMakeMove = "make_move"
	MsgEndGame  = "end_game"

	// server - client event names live in the session package
	// (game_update, invalid_move, game_ended, error); the coordinator
	// emits them and this layer delivers them verbatim.
)
