package history

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DecodeSeries reads a sample series from a yaml sequence whose items are
// numbers, numeric strings or recorded points ({at, v}).
func DecodeSeries(d []byte) (raw []float64, err error) {
	var items []interface{}

	err = yaml.Unmarshal(d, &items)
	if err != nil {
		return
	}

	raw = make([]float64, 0, len(items))

	for idx, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			if item, ok = m["v"]; !ok {
				err = fmt.Errorf("sample %d: no value: %w", idx, commerr.ErrInvalidArgument)

				return
			}
		}

		var v float64

		v, err = cast.ToFloat64E(item)
		if err != nil {
			err = fmt.Errorf("sample %d: %v: %w", idx, err, commerr.ErrInvalidArgument)

			return
		}

		raw = append(raw, v)
	}

	return
}

// EncodeSeries writes values in the form DecodeSeries reads.
func EncodeSeries(values []float64) ([]byte, error) {
	return yaml.Marshal(values)
}
