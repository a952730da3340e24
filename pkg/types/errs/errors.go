package errs

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrUnknownAssetKind = errors.New("unknown asset kind")
)
