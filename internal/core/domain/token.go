package domain

import "errors"

var ErrInvalidSharedToken = errors.New("invalid or expired shared token")
