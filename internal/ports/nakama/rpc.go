package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"bridge/internal/app"
	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/notation"
	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	bridgeService  = app.NewService(nil)
	receiptService *app.ReceiptService

	// sessionDealSeed deals boards requested without a seed.
	sessionDealSeed int64

	// resultStoreFor builds the store an RPC records into.
	resultStoreFor = func(nk runtime.NakamaModule) ports.ResultStore {
		return NewNakamaResultAdapter(nk)
	}
)

// configureReceipts enables receipts when a signing secret is configured.
func configureReceipts(logger runtime.Logger) {
	rc := config.Receipt()
	if rc.Secret == "" {
		logger.Warn("Receipt secret missing from config, scored boards will not carry receipts.")
		receiptService = nil
		return
	}
	receiptService = app.NewReceiptService(rc.Secret, rc.Issuer, time.Duration(rc.TTLSeconds)*time.Second)
}

// configureDealSeed takes the configured deal seed or draws one for this session.
func configureDealSeed(logger runtime.Logger) {
	seed, set := config.DealSeed()
	sessionDealSeed = bridgeService.SeedOrRandom(seed, set)
	if !set {
		logger.Info("No deal seed configured, session deals with seed %d.", sessionDealSeed)
	}
}

// RegisterRPCs registers every bridge RPC with the initializer.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcScore:         RpcScoreBoard,
		RpcDeal:          RpcDealBoard,
		RpcMatchpoints:   RpcMatchpointBoard,
		RpcVerifyReceipt: RpcVerifyReceiptToken,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

type scoreRequest struct {
	Board    int    `json:"board"`
	Passed   bool   `json:"passed"`
	Contract string `json:"contract"`
	Declarer string `json:"declarer"`
	Outcome  string `json:"outcome"`
}

func (r scoreRequest) parse() (domain.BoardNumber, domain.Result, error) {
	board, err := domain.NewBoardNumber(r.Board)
	if err != nil {
		return 0, domain.Result{}, err
	}
	if r.Passed {
		return board, domain.PassedOut(), nil
	}
	contract, err := notation.ParseContract(r.Contract)
	if err != nil {
		return 0, domain.Result{}, err
	}
	declarer, err := domain.ParseDirection(r.Declarer)
	if err != nil {
		return 0, domain.Result{}, err
	}
	outcome, err := notation.ParseOutcome(r.Outcome)
	if err != nil {
		return 0, domain.Result{}, err
	}
	result, err := outcome.Resolve(contract, declarer)
	if err != nil {
		return 0, domain.Result{}, err
	}
	return board, result, nil
}

type scoreResponse struct {
	Result    domain.ScoredBoard `json:"result"`
	Breakdown domain.Breakdown   `json:"breakdown"`
	// Trump is the contract's trump suit, empty for no-trump and passed boards.
	Trump   string `json:"trump"`
	Receipt string `json:"receipt,omitempty"`
}

// RpcScoreBoard scores one table's result, stores it with the board and returns a receipt.
//
// Payload: {"board": 4, "contract": "3NTX", "declarer": "E", "outcome": "-1"} or
// {"board": 4, "passed": true}.
func RpcScoreBoard(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req scoreRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	board, result, err := req.parse()
	if err != nil {
		logger.Warn("RpcScoreBoard [User:%s]: Rejected result: %v", userId, err)
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	scored, _ := bridgeService.Score(board, result)
	if err := app.NewLedger(resultStoreFor(nk)).Record(ctx, scored); err != nil {
		logger.Error("RpcScoreBoard [User:%s]: Failed to record board %d: %v", userId, board, err)
		if errors.Is(err, ports.ErrResultConflict) {
			return "", runtime.NewError("Board is being scored concurrently, retry", codeAborted)
		}
		return "", runtime.NewError("Internal error", codeInternal)
	}

	res := scoreResponse{Result: scored, Breakdown: result.Breakdown(scored.Vulnerability)}
	if suit, ok := result.Contract.Strain.Trump(); ok && !result.Passed {
		res.Trump = suit.String()
	}
	if receiptService != nil {
		res.Receipt, err = receiptService.Sign(scored)
		if err != nil {
			logger.Error("RpcScoreBoard [User:%s]: Failed to sign receipt: %v", userId, err)
			return "", runtime.NewError("Internal error", codeInternal)
		}
	}

	logger.Info("RpcScoreBoard [User:%s]: Board %d %s scored %d", userId, board, result, scored.Score)
	resBytes, err := json.Marshal(res)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(resBytes), nil
}

type dealRequest struct {
	Board int    `json:"board"`
	Seed  *int64 `json:"seed"`
}

// RpcDealBoard deals a board. Without an explicit seed the session deal seed is used, so
// every table asking for the same board receives the same cards.
//
// Payload: {"board": 5, "seed": 42}
func RpcDealBoard(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req dealRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	board, err := domain.NewBoardNumber(req.Board)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	seed := sessionDealSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	deal, _, err := bridgeService.Deal(board, seed)
	if err != nil {
		logger.Error("RpcDealBoard [User:%s]: Failed to deal board %d: %v", userId, board, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}

	out, err := encodeStruct(dealToMap(deal))
	if err != nil {
		logger.Error("RpcDealBoard [User:%s]: Failed to encode deal: %v", userId, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(out), nil
}

type matchpointRequest struct {
	Board  int   `json:"board"`
	Scores []int `json:"scores"`
}

type standingView struct {
	ID            string  `json:"id"`
	Result        string  `json:"result"`
	Score         int     `json:"score"`
	NSMatchpoints float64 `json:"ns_matchpoints"`
	EWMatchpoints float64 `json:"ew_matchpoints"`
	NSPercent     float64 `json:"ns_percent"`
}

type matchpointResponse struct {
	Board       int            `json:"board,omitempty"`
	Top         float64        `json:"top"`
	Standings   []standingView `json:"standings,omitempty"`
	Matchpoints []float64      `json:"matchpoints,omitempty"`
	Percentages []float64      `json:"percentages,omitempty"`
}

// RpcMatchpointBoard matchpoints a board from stored results, or an ad-hoc list of
// North-South scores when "scores" is given.
//
// Payload: {"board": 7} or {"scores": [420, 450, -50]}
func RpcMatchpointBoard(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req matchpointRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}

	var res matchpointResponse
	if len(req.Scores) > 0 {
		res.Matchpoints = domain.Matchpoints(req.Scores)
		res.Percentages = domain.Percentages(res.Matchpoints)
		res.Top = domain.Top(len(req.Scores))
	} else {
		board, err := domain.NewBoardNumber(req.Board)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		standings, err := app.NewLedger(resultStoreFor(nk)).Standings(ctx, board)
		if err != nil {
			if errors.Is(err, app.ErrNoResults) {
				return "", runtime.NewError(err.Error(), codeNotFound)
			}
			logger.Error("RpcMatchpointBoard [User:%s]: Failed to load board %d: %v", userId, board, err)
			return "", runtime.NewError("Internal error", codeInternal)
		}
		res.Board = req.Board
		res.Top = domain.Top(len(standings))
		for _, s := range standings {
			res.Standings = append(res.Standings, standingView{
				ID:            s.Scored.ID,
				Result:        s.Scored.Result().String(),
				Score:         s.Scored.Score,
				NSMatchpoints: s.NSMatchpoints,
				EWMatchpoints: s.EWMatchpoints,
				NSPercent:     s.NSPercent,
			})
		}
	}

	resBytes, err := json.Marshal(res)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(resBytes), nil
}

type receiptView struct {
	Valid         bool   `json:"valid"`
	ID            string `json:"id"`
	Board         int    `json:"board"`
	Vulnerability string `json:"vulnerability"`
	Result        string `json:"result"`
	Score         int    `json:"score"`
	ExpiresAt     string `json:"expires_at"`
}

// RpcVerifyReceiptToken checks a receipt issued by RpcScoreBoard.
//
// Payload: {"receipt": "<jwt>"}
func RpcVerifyReceiptToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req struct {
		Receipt string `json:"receipt"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Receipt == "" {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	if receiptService == nil {
		logger.Error("RpcVerifyReceiptToken [User:%s]: Receipts are not configured", userId)
		return "", runtime.NewError("Receipts are not configured", codeInternal)
	}

	receipt, err := receiptService.Verify(req.Receipt)
	if err != nil {
		logger.Warn("RpcVerifyReceiptToken [User:%s]: %v", userId, err)
		return "", runtime.NewError("Invalid receipt", codeInvalidArgument)
	}

	resBytes, err := json.Marshal(receiptView{
		Valid:         true,
		ID:            receipt.ID,
		Board:         int(receipt.Board),
		Vulnerability: receipt.Vulnerability.String(),
		Result:        receipt.Result,
		Score:         receipt.Score,
		ExpiresAt:     receipt.ExpiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(resBytes), nil
}
