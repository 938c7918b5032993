package service

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/layer-3/zetafrog/core"
)

type rawTransactioner interface {
	RawTransaction() []byte
}

type binaryMarshaler interface {
	MarshalBinary() ([]byte, error)
}

// rawSignedFields are the map keys a signed result may carry its payload under, in priority order
var rawSignedFields = []string{"rawTransaction", "raw_transaction"}

// rawTransaction extracts the raw signed payload from a signing backend result.
// Lookup order: RawTransaction(), MarshalBinary(), then rawSignedFields.
func rawTransaction(signed any) ([]byte, error) {
	switch v := signed.(type) {
	case rawTransactioner:
		if raw := v.RawTransaction(); len(raw) > 0 {
			return raw, nil
		}
	case binaryMarshaler:
		raw, err := v.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("failed to encode signed transaction: %w", err)
		}
		return raw, nil
	case map[string]any:
		for _, field := range rawSignedFields {
			if raw, ok := rawBytes(v[field]); ok {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("%w (fields: %v)", core.ErrIncompatibleSigner, mapKeys(v))
	}
	return nil, fmt.Errorf("%w (type %T)", core.ErrIncompatibleSigner, signed)
}

func rawBytes(v any) ([]byte, bool) {
	switch raw := v.(type) {
	case []byte:
		return raw, len(raw) > 0
	case string:
		decoded, err := hexutil.Decode(raw)
		return decoded, err == nil && len(decoded) > 0
	}
	return nil, false
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
