package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bridge/internal/domain"
	"bridge/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

const maxSaveAttempts = 3

// StorageModule is the part of runtime.NakamaModule the result store needs.
type StorageModule interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaResultAdapter keeps every table's result for a board in one system-owned storage
// object. Writes carry the version that was read so concurrent scorers never drop a result.
type NakamaResultAdapter struct {
	nk StorageModule
}

// NewNakamaResultAdapter creates a new result store backed by Nakama storage.
func NewNakamaResultAdapter(nk StorageModule) *NakamaResultAdapter {
	return &NakamaResultAdapter{nk: nk}
}

type boardResults struct {
	Results []domain.ScoredBoard `json:"results"`
}

func boardKey(board domain.BoardNumber) string {
	return fmt.Sprintf("board-%d", board)
}

func (a *NakamaResultAdapter) SaveResult(ctx context.Context, result domain.ScoredBoard) error {
	var err error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		err = a.appendResult(ctx, result)
		if !errors.Is(err, ports.ErrResultConflict) {
			return err
		}
	}
	return err
}

func (a *NakamaResultAdapter) appendResult(ctx context.Context, result domain.ScoredBoard) error {
	stored, version, err := a.read(ctx, result.Board)
	if err != nil {
		return err
	}
	stored.Results = append(stored.Results, result)

	value, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal board results: %w", err)
	}
	if version == "" {
		// Only create; a concurrent first write makes this one retry.
		version = "*"
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      resultsCollection,
			Key:             boardKey(result.Board),
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return ports.ErrResultConflict
		}
		return fmt.Errorf("failed to write board results: %w", err)
	}
	return nil
}

func (a *NakamaResultAdapter) BoardResults(ctx context.Context, board domain.BoardNumber) ([]domain.ScoredBoard, error) {
	stored, _, err := a.read(ctx, board)
	if err != nil {
		return nil, err
	}
	return stored.Results, nil
}

func (a *NakamaResultAdapter) read(ctx context.Context, board domain.BoardNumber) (boardResults, string, error) {
	stored := boardResults{Results: []domain.ScoredBoard{}}
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: resultsCollection, Key: boardKey(board)},
	})
	if err != nil {
		return stored, "", fmt.Errorf("failed to read board results: %w", err)
	}
	if len(objects) == 0 {
		return stored, "", nil
	}

	obj := objects[0]
	if err := json.Unmarshal([]byte(obj.GetValue()), &stored); err != nil {
		return stored, "", fmt.Errorf("failed to unmarshal board results: %w", err)
	}
	if stored.Results == nil {
		stored.Results = []domain.ScoredBoard{}
	}
	return stored, obj.GetVersion(), nil
}

var _ ports.ResultStore = (*NakamaResultAdapter)(nil)
