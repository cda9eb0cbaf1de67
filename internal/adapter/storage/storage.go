package storage

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
