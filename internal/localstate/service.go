package localstate

import (
	"context"
	"encoding/json"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github/walletgrid/go-custody-wallet/internal/config"
)

const lastConnectorKey = "connector.last"

// LastConnector is the persisted record of the most recently connected
// wallet, restored by the UI on the next page load.
type LastConnector struct {
	WalletID    string    `json:"walletId"`
	ChainID     int64     `json:"chainId"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Service is the durable local key-value store backing connector state.
type Service struct {
	db *badger.DB
}

// NewService opens the store at the configured path. With InMemory set no
// files are written, which is what the tests use.
func NewService(cfg config.LocalStateServer) (*Service, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local state store")
	}

	return &Service{db: db}, nil
}

// SetLastConnector persists the given wallet/chain pair as the last-used
// connector.
func (s *Service) SetLastConnector(_ context.Context, walletID string, chainID int64) error {
	record := LastConnector{
		WalletID:    walletID,
		ChainID:     chainID,
		ConnectedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal last connector record")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(lastConnectorKey), payload)
	})
	if err != nil {
		return errors.Wrap(err, "failed to persist last connector record")
	}

	return nil
}

// LastConnector returns the persisted record, or nil if none exists.
func (s *Service) LastConnector(_ context.Context) (*LastConnector, error) {
	var record *LastConnector

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(lastConnectorKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			record = &LastConnector{}
			return json.Unmarshal(val, record)
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read last connector record")
	}

	return record, nil
}

// ClearLastConnector removes the persisted record. Removing an absent record
// is not an error, disconnect calls this unconditionally.
func (s *Service) ClearLastConnector(_ context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(lastConnectorKey))
	})
	if err != nil {
		return errors.Wrap(err, "failed to clear last connector record")
	}

	return nil
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.db.Close()
}
