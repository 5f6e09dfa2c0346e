package database

import "errors"

var ErrInsufficientBalance = errors.New("insufficient balance")
