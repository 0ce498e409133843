package contracts

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

// visitedBucket is the bbolt bucket holding persisted visited sets, keyed by contract code identity.
var visitedBucket = []byte("visited")

// Cache holds one Contract record per contract source path. Records persist across fuzzing episodes so that
// coverage tracking and seed corpora warm-start when the same contract is fuzzed again. When created with a
// database path, visited sets additionally persist across engine runs.
type Cache struct {
	// entries maps contract source paths to their records.
	entries map[string]*Contract

	// entriesLock guards entries against concurrent episode access.
	entriesLock sync.Mutex

	// db is the optional on-disk store for visited sets. Nil when persistence is disabled.
	db *bbolt.DB
}

// NewCache creates a contract cache. If databasePath is non-empty, visited sets are persisted there across runs.
func NewCache(databasePath string) (*Cache, error) {
	cache := &Cache{
		entries: make(map[string]*Contract),
	}

	if databasePath != "" {
		db, err := bbolt.Open(databasePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("could not open coverage database: %v", err)
		}
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(visitedBucket)
			return err
		})
		if err != nil {
			return nil, err
		}
		cache.db = db
	}
	return cache, nil
}

// Get returns the cached record for the given contract source path, if one exists.
func (c *Cache) Get(sourcePath string) (*Contract, bool) {
	c.entriesLock.Lock()
	defer c.entriesLock.Unlock()
	contract, ok := c.entries[sourcePath]
	return contract, ok
}

// Put stores a freshly loaded contract record. If a record already exists for the same source path, the new record
// adopts its accumulated visited set, seed corpus and method-visited flags, so the reload refreshes the artifact
// and analysis report without losing cross-episode state. Otherwise, when persistence is enabled, any visited set
// stored for the contract's code identity is restored.
func (c *Cache) Put(sourcePath string, contract *Contract) error {
	c.entriesLock.Lock()
	defer c.entriesLock.Unlock()

	if previous, ok := c.entries[sourcePath]; ok {
		contract.adoptState(previous)
	} else if c.db != nil {
		if err := c.restoreVisited(contract); err != nil {
			return err
		}
	}
	c.entries[sourcePath] = contract
	return nil
}

// Flush writes the visited set of every cached contract to the on-disk store. A no-op when persistence is disabled.
func (c *Cache) Flush() error {
	if c.db == nil {
		return nil
	}
	c.entriesLock.Lock()
	defer c.entriesLock.Unlock()

	return c.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(visitedBucket)
		for _, contract := range c.entries {
			serialized, err := json.Marshal(contract.Visited())
			if err != nil {
				return err
			}
			identity := contract.Artifact().CodeIdentity()
			if err := bucket.Put(identity[:], serialized); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close flushes and closes the on-disk store, if one is open.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}
	return c.db.Close()
}

// restoreVisited loads a persisted visited set for the contract's code identity into the contract, if one exists.
func (c *Cache) restoreVisited(contract *Contract) error {
	return c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(visitedBucket)
		identity := contract.Artifact().CodeIdentity()
		data := bucket.Get(identity[:])
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, contract.Visited())
	})
}
