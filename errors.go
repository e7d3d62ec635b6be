package coinflip

import "errors"

var ErrCoinAlreadyExists = errors.New("coin already exists")
var ErrCoinNotFound = errors.New("coin not found")
var ErrCapacityExceeded = errors.New("coin store capacity exceeded")

func IsErrCoinAlreadyExists(err error) bool {
	return errors.Is(err, ErrCoinAlreadyExists)
}

func IsErrCoinNotFound(err error) bool {
	return errors.Is(err, ErrCoinNotFound)
}

func IsErrCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}
