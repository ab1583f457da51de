// Package codec converts vehicle and refueling collections to and from the
// JSON blobs held in the store.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theirongolddev/fuelbook/internal/model"
)

// Storage keys for the two collections.
const (
	VehiclesKey   = "veiculos_salvos"
	RefuelingsKey = "abastecimentos_salvos"
)

// ErrDecode matches every *DecodeError via errors.Is.
var ErrDecode = errors.New("stored data could not be decoded")

// DecodeError reports a blob that could not be turned back into records.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// EncodeVehicles serializes the vehicle collection. A nil slice encodes as an
// empty array.
func EncodeVehicles(vs []model.Vehicle) ([]byte, error) {
	return encode(vs)
}

// DecodeVehicles parses a stored vehicle blob. Empty input yields an empty
// collection.
func DecodeVehicles(b []byte) ([]model.Vehicle, error) {
	return decode[model.Vehicle](VehiclesKey, b)
}

// EncodeRefuelings serializes the refueling collection in sequence order.
func EncodeRefuelings(rs []model.Refueling) ([]byte, error) {
	return encode(rs)
}

// DecodeRefuelings parses a stored refueling blob.
func DecodeRefuelings(b []byte) ([]model.Refueling, error) {
	return decode[model.Refueling](RefuelingsKey, b)
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func decode[T any](key string, b []byte) ([]T, error) {
	if len(b) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return []T{}, &DecodeError{Key: key, Err: err}
	}
	if out == nil {
		// "null" is what an encoder that never saw a slice would write.
		out = []T{}
	}
	return out, nil
}
