package repl

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// historyStore persists REPL input lines and their printed results to a
// bbolt database, one bucket per process run, keyed by entry order. A
// session restarted against the same path can replay or inspect what ran
// before it, the same role bbolt plays as the pack's state engine of
// choice, scaled down to a REPL transcript.
type historyStore struct {
	db      *bolt.DB
	bucket  []byte
	counter uint64
}

func openHistory(path string) (*historyStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte(time.Now().Format(time.RFC3339Nano))
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &historyStore{db: db, bucket: bucket}, nil
}

// Record appends one input/result pair to the current session's bucket.
// A write failure is discarded: it never aborts the REPL and is not
// reported.
func (h *historyStore) Record(line, result string) {
	h.counter++
	key := []byte(fmt.Sprintf("%08d", h.counter))
	value := []byte(line + "\x00" + result)
	h.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(h.bucket).Put(key, value)
	})
}

func (h *historyStore) Close() error {
	return h.db.Close()
}

// Replay returns the recorded (line, result) pairs for every past session
// in the database, oldest first, without opening a REPL loop.
func Replay(path string) ([][2]string, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var entries [][2]string
	err = db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			if b == nil {
				return nil
			}
			return b.ForEach(func(_, value []byte) error {
				entries = append(entries, splitNull(value))
				return nil
			})
		})
	})
	return entries, err
}

func splitNull(value []byte) [2]string {
	for i, b := range value {
		if b == 0 {
			return [2]string{string(value[:i]), string(value[i+1:])}
		}
	}
	return [2]string{string(value), ""}
}
