package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"msg"`

	err error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
		err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrNotFound(what, key string, value interface{}) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found by %v (%v)", what, key, value), nil)
}

// ErrState reports a request that is well-formed but conflicts with the
// current state (inactive grupo, consumed code, ...). Mapped to 400 to
// match the original wire behavior.
func ErrState(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr logs server-side failures and writes the error as JSON.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err.err), zap.String("path", ctx.FullPath()))
	}

	ctx.JSON(err.StatusCode, err)
}
