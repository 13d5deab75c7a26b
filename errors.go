package imagebanner

import "errors"

// Errors returned when an image banner cannot be created or rendered. They
// are wrapped with further detail so test for them with errors.Is.
var (
	ErrNotFound         = errors.New("imagebanner: image not found")
	ErrDecode           = errors.New("imagebanner: cannot decode image")
	ErrIO               = errors.New("imagebanner: cannot read image")
	ErrInternal         = errors.New("imagebanner: internal error")
	ErrInvalidParameter = errors.New("imagebanner: invalid parameter")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, "ResourceNotFound"},
	{ErrDecode, "DecodeError"},
	{ErrIO, "IOError"},
	{ErrInternal, "InternalError"},
	{ErrInvalidParameter, "InvalidParameter"},
}

// KindOf returns the name of the kind of err, or "" if err is nil.
// Unrecognised errors are reported as an InternalError.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "InternalError"
}
