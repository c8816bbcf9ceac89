package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrContactExists
	ErrNoContactsFound
	ErrInvalidDate
	ErrTooManyRequests
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "error internal",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrUnauthorize:      "unauthorize request",
	ErrCredentialExists: "email or username already exists",
	ErrInvalidPassword:  "password invalid",
	ErrContactExists:    "contact already exists",
	ErrNoContactsFound:  "no contacts found",
	ErrInvalidDate:      "invalid birthday date",
	ErrTooManyRequests:  "too many requests",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrCredentialExists: http.StatusBadRequest,
	ErrInvalidPassword:  http.StatusBadRequest,
	ErrContactExists:    http.StatusBadRequest,
	ErrNoContactsFound:  http.StatusBadRequest,
	ErrInvalidDate:      http.StatusBadRequest,
	ErrTooManyRequests:  http.StatusTooManyRequests,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrUnauthorize:      "0004",
	ErrCredentialExists: "0005",
	ErrInvalidPassword:  "0006",
	ErrContactExists:    "0007",
	ErrNoContactsFound:  "0008",
	ErrInvalidDate:      "0009",
	ErrTooManyRequests:  "0010",
}
