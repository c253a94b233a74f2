package compensation

import "errors"

var (
	ErrPayBandNotFound  = errors.New("pay band not found")
	ErrPayBandNameTaken = errors.New("pay band name already exists")
	ErrRecordNotFound   = errors.New("compensation record not found")
	ErrOutsidePayBand   = errors.New("salary falls outside the selected pay band")
)
