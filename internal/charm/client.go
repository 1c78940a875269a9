// ABOUTME: Charm KV client wrapper for intervals storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/intervals/internal/storage"
)

const (
	// DBName is the Charm KV database holding intervals documents.
	DBName = "intervals"

	// DefaultHost is the Charm server used when none is configured.
	DefaultHost = "charm.2389.dev"
)

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client stores intervals documents in Charm KV.
type Client struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// Compile-time check that Client implements storage.Backend.
var _ storage.Backend = (*Client)(nil)

// InitClient initializes the global Charm client against host.
// Thread-safe; can be called multiple times.
func InitClient(host string) (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if err := ConfigureHost(host); err != nil {
			clientErr = err
			return
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = &Client{
			kv:       db,
			autoSync: true,
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// ConfigureHost points the Charm libraries at host, or DefaultHost when empty.
func ConfigureHost(host string) error {
	if host == "" {
		host = DefaultHost
	}
	return os.Setenv("CHARM_HOST", host)
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the document stored at key, or nil if it does not exist.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores a document and syncs if enabled.
func (c *Client) Set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot write %s: %w", key, storage.ErrReadOnly)
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes a document and syncs if enabled.
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot delete %s: %w", key, storage.ErrReadOnly)
	}

	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Documents lists which intervals documents exist locally.
func (c *Client) Documents() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	return knownDocuments(keys), nil
}

// knownDocuments filters raw keys down to the documents intervals owns,
// in a stable order.
func knownDocuments(keys [][]byte) []string {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[string(k)] = true
	}

	var docs []string
	for _, name := range []string{storage.KeySettings, storage.KeyWorkout, storage.KeyActivityLog} {
		if present[name] {
			docs = append(docs, name)
		}
	}
	return docs
}
