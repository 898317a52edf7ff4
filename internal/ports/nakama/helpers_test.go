package nakama

import (
	"context"
	"fmt"
	"sync"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode    int64
	data      []byte
	presences []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages     []sentMessage
	labelUpdates []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{opCode: opCode, data: data, presences: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return md.BroadcastMessage(opCode, data, presences, sender, reliable)
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates = append(md.labelUpdates, label)
	return nil
}

func (md *mockDispatcher) opCodes() []int64 {
	out := make([]int64, len(md.messages))
	for i, m := range md.messages {
		out[i] = m.opCode
	}
	return out
}

type storedObject struct {
	value   string
	version int
}

// memoryStorage implements StorageModule with version checks like Nakama's.
type memoryStorage struct {
	mu       sync.Mutex
	objects  map[string]storedObject
	rejectN  int // reject the next N writes with a version error
	readErr  error
	writeErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string]storedObject)}
}

func storageID(collection, key string) string {
	return collection + "/" + key
}

func (m *memoryStorage) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []*api.StorageObject
	for _, r := range reads {
		obj, ok := m.objects[storageID(r.Collection, r.Key)]
		if !ok {
			continue
		}
		out = append(out, &api.StorageObject{
			Collection: r.Collection,
			Key:        r.Key,
			Value:      obj.value,
			Version:    fmt.Sprintf("v%d", obj.version),
		})
	}
	return out, nil
}

func (m *memoryStorage) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	if m.rejectN > 0 {
		m.rejectN--
		return nil, runtime.ErrStorageRejectedVersion
	}
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		id := storageID(w.Collection, w.Key)
		current, exists := m.objects[id]
		switch {
		case w.Version == "*" && exists:
			return nil, runtime.ErrStorageRejectedVersion
		case w.Version != "" && w.Version != "*" && (!exists || w.Version != fmt.Sprintf("v%d", current.version)):
			return nil, runtime.ErrStorageRejectedVersion
		}
		next := storedObject{value: w.Value, version: current.version + 1}
		m.objects[id] = next
		acks = append(acks, &api.StorageObjectAck{
			Collection: w.Collection,
			Key:        w.Key,
			Version:    fmt.Sprintf("v%d", next.version),
		})
	}
	return acks, nil
}
