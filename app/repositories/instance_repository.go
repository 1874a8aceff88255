package repositories

import (
	"errors"
	"time"

	"postfeed/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerInstanceRepository implements InstanceRepository using BadgerDB.
// Every write refreshes the entry TTL; an instance nobody touches for ttl
// is dropped, which is how abandoned instances get unmounted.
type BadgerInstanceRepository struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerInstanceRepository creates a new BadgerInstanceRepository
func NewBadgerInstanceRepository(db *badger.DB, ttl time.Duration) *BadgerInstanceRepository {
	return &BadgerInstanceRepository{db: db, ttl: ttl}
}

func (r *BadgerInstanceRepository) entry(inst *models.Instance) (*badger.Entry, error) {
	data, err := marshalEntity(inst)
	if err != nil {
		return nil, err
	}
	e := badger.NewEntry(instanceKey(inst.ID), data)
	if r.ttl > 0 {
		e = e.WithTTL(r.ttl)
	}
	return e, nil
}

// Create stores a new instance
func (r *BadgerInstanceRepository) Create(inst *models.Instance) error {
	e, err := r.entry(inst)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(e)
	})
}

func getInstance(txn *badger.Txn, id string) (*models.Instance, error) {
	item, err := txn.Get(instanceKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var inst models.Instance
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &inst)
	}); err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetByID retrieves an instance by ID
func (r *BadgerInstanceRepository) GetByID(id string) (*models.Instance, error) {
	var inst *models.Instance
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		inst, err = getInstance(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// Update applies fn to the stored instance inside a read-write transaction
func (r *BadgerInstanceRepository) Update(id string, fn func(inst *models.Instance) error) (*models.Instance, error) {
	var inst *models.Instance
	err := r.db.Update(func(txn *badger.Txn) error {
		var err error
		inst, err = getInstance(txn, id)
		if err != nil {
			return err
		}
		if err := fn(inst); err != nil {
			return err
		}
		e, err := r.entry(inst)
		if err != nil {
			return err
		}
		return txn.SetEntry(e)
	})
	if errors.Is(err, badger.ErrConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// Delete removes an instance
func (r *BadgerInstanceRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(instanceKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(instanceKey(id))
	})
}
