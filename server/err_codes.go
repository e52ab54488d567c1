package server

import "main/errors"

var errInvalidAuth = errors.NewError("server", errors.ErrInvalidAuth.Error(), nil)
