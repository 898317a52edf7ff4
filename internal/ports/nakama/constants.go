package nakama

const (
	// RpcScore scores one table's result and stores it with its board.
	RpcScore = "bridge_score"
	// RpcDeal deals a board reproducibly from the configured seed.
	RpcDeal = "bridge_deal"
	// RpcMatchpoints matchpoints every stored result of a board.
	RpcMatchpoints = "bridge_matchpoints"
	// RpcVerifyReceipt checks a receipt returned by RpcScore.
	RpcVerifyReceipt = "bridge_verify_receipt"

	// MatchNameTrickTable is the authoritative match handler name registered with Nakama.
	MatchNameTrickTable = "bridge_trick_table"

	resultsCollection = "bridge_results"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayCard   int64 = 1
	OpResetTrick int64 = 2

	// Server -> Client events
	OpTableState     int64 = 101
	OpCardRecorded   int64 = 102
	OpTrickCompleted int64 = 103
	OpSeatConflict   int64 = 104 // sent privately
	OpTableError     int64 = 105 // sent privately
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument = 3
	codeNotFound        = 5
	codeAborted         = 10
	codeInternal        = 13
)
