package compiler

import "github.com/pkg/errors"

var (
	ErrUnknownObject   = errors.New("compiler: unknown object")
	ErrUnknownMaterial = errors.New("compiler: unknown material index")
)
