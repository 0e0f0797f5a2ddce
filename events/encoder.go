package events

import (
	"github.com/bytedance/sonic"
	"github.com/go-errors/errors"
)

type Encoder interface {
	Encode(v interface{}) ([]byte, error)
}

type JSONEncoder struct{}

func (e *JSONEncoder) Encode(v interface{}) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	return data, nil
}
