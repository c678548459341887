package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	UnprocessibleEntity ErrorCode = "unprocessible_entity"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	InvalidRating       ErrorCode = "invalid_rating"
	EmptyComment        ErrorCode = "empty_comment"
	AlreadyRated        ErrorCode = "already_rated"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	RecipeNotOwned      ErrorCode = "recipe_not_owned"
	CommentNotFound     ErrorCode = "comment_not_found"
	UserNotFound        ErrorCode = "user_not_found"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	UnprocessibleEntity: http.StatusUnprocessableEntity,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	InvalidRating:       http.StatusBadRequest,
	EmptyComment:        http.StatusBadRequest,
	AlreadyRated:        http.StatusBadRequest,
	RecipeNotFound:      http.StatusNotFound,
	RecipeNotOwned:      http.StatusUnauthorized,
	CommentNotFound:     http.StatusNotFound,
	UserNotFound:        http.StatusNotFound,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
