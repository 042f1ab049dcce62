package server

import "errors"

var (
	ErrStartup = errors.New("server startup hook failed")
	ErrListen  = errors.New("failed to listen")
)
