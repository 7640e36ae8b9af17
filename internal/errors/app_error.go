package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"

	// Cart engine taxonomy.
	ErrCodeCartNoContext       = "CART_NO_CONTEXT"
	ErrCodeCartCrossRestaurant = "CART_CROSS_RESTAURANT"
	ErrCodeCartInvalidQuantity = "CART_INVALID_QUANTITY"
	ErrCodeCartFull            = "CART_FULL"
	ErrCodeCartMaxQuantity     = "CART_MAX_QUANTITY"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

// Cart engine errors. Messages are user-facing and rendered as-is
// by the notification layer.
func NoContextError() *AppError {
	return NewAppError(ErrCodeCartNoContext, "Veuillez scanner le QR code de votre table", http.StatusConflict)
}

func CrossRestaurantError() *AppError {
	return NewAppError(ErrCodeCartCrossRestaurant, "Ce produit appartient à un autre restaurant", http.StatusConflict)
}

func InvalidQuantityError() *AppError {
	return NewAppError(ErrCodeCartInvalidQuantity, "Quantité invalide", http.StatusBadRequest)
}

func CartFullError(maxItems int) *AppError {
	return NewAppError(ErrCodeCartFull, fmt.Sprintf("Le panier est limité à %d articles", maxItems), http.StatusConflict)
}

func MaxQuantityError(maxQuantity int) *AppError {
	return NewAppError(ErrCodeCartMaxQuantity, fmt.Sprintf("Quantité maximale de %d par article", maxQuantity), http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
