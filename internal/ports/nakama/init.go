package nakama

import (
	"context"
	"database/sql"

	"bridge/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if err := config.LoadConfigFrom(env["BRIDGE_CONFIG_PATH"], env); err != nil {
		logger.Error("InitModule: Failed to load bridge config: %v", err)
		return err
	}
	configureReceipts(logger)
	configureDealSeed(logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameTrickTable, NewTrickTable); err != nil {
		return err
	}

	logger.Info("Bridge Go module loaded.")
	return nil
}
