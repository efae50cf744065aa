package storage

import "fmt"

// BatchWriter is implemented by backends that can apply a write set atomically.
type BatchWriter interface {
	WriteBatch(puts map[string][]byte, deletes map[string]struct{}) error
}

// Overlay buffers writes on top of a base database. Reads see the buffered
// writes first. Nothing reaches the base until Commit.
type Overlay struct {
	base    Database
	puts    map[string][]byte
	deletes map[string]struct{}
}

// NewOverlay opens an empty write set over base.
func NewOverlay(base Database) *Overlay {
	return &Overlay{
		base:    base,
		puts:    make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (o *Overlay) Put(key []byte, value []byte) error {
	k := string(key)
	delete(o.deletes, k)
	o.puts[k] = append([]byte(nil), value...)
	return nil
}

func (o *Overlay) Get(key []byte) ([]byte, error) {
	k := string(key)
	if _, ok := o.deletes[k]; ok {
		return nil, ErrNotFound
	}
	if value, ok := o.puts[k]; ok {
		return append([]byte(nil), value...), nil
	}
	return o.base.Get(key)
}

func (o *Overlay) Has(key []byte) (bool, error) {
	k := string(key)
	if _, ok := o.deletes[k]; ok {
		return false, nil
	}
	if _, ok := o.puts[k]; ok {
		return true, nil
	}
	return o.base.Has(key)
}

func (o *Overlay) Delete(key []byte) error {
	k := string(key)
	delete(o.puts, k)
	o.deletes[k] = struct{}{}
	return nil
}

// Pending reports the number of buffered writes and deletes.
func (o *Overlay) Pending() int { return len(o.puts) + len(o.deletes) }

// Commit flushes the write set into the base and resets the overlay.
func (o *Overlay) Commit() error {
	if o.Pending() == 0 {
		return nil
	}
	if bw, ok := o.base.(BatchWriter); ok {
		if err := bw.WriteBatch(o.puts, o.deletes); err != nil {
			return fmt.Errorf("overlay commit: %w", err)
		}
	} else {
		for k, v := range o.puts {
			if err := o.base.Put([]byte(k), v); err != nil {
				return fmt.Errorf("overlay commit: %w", err)
			}
		}
		for k := range o.deletes {
			if err := o.base.Delete([]byte(k)); err != nil {
				return fmt.Errorf("overlay commit: %w", err)
			}
		}
	}
	o.Discard()
	return nil
}

// Discard drops every buffered write.
func (o *Overlay) Discard() {
	o.puts = make(map[string][]byte)
	o.deletes = make(map[string]struct{})
}

// Close is a no-op; the base database is owned by the caller.
func (o *Overlay) Close() {}
