package apperror

import "fmt"

// AppError adalah error aplikasi yang membawa kode stabil dan status HTTP,
// sehingga handler tinggal menerjemahkan tanpa switch per modul.
type AppError struct {
	Code       string // kode stabil untuk klien (lihat codes.go)
	Message    string // pesan yang aman ditampilkan ke user
	HTTPStatus int
	Err        error // error asli (opsional), untuk errors.Is/As dan logging
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New membuat AppError tanpa membungkus error lain.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus error asli sambil menstandarkan kode dan status.
// Mengembalikan nil kalau err nil, jadi aman dipakai di jalur sukses.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
