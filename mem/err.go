package mem

import (
	"github.com/ezrec/lvcpu/translate"
)

var f = translate.From

// ErrImageSize indicates that an image does not fit the memory limit.
type ErrImageSize struct {
	Limit int
}

func (err *ErrImageSize) Error() string {
	return f("image larger than %d bytes", err.Limit)
}

func (err *ErrImageSize) Is(target error) (ok bool) {
	_, ok = target.(*ErrImageSize)
	return
}
