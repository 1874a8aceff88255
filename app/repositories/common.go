package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// Key prefix for mounted instances
	InstanceKeyPrefix = "instance:"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record was modified concurrently")
)

func instanceKey(id string) []byte {
	return []byte(InstanceKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
