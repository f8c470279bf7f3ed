package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/factory"
	"github.com/scribehq/scribe/store"
	"github.com/scribehq/scribe/utils"
)

// errorFromStore translates store and factory failures into transport
// status codes. This is the only place that mapping lives.
func errorFromStore(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		utils.Error(ctx, http.StatusBadRequest, 40001, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40106, err.Error())
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPostNotFound),
		errors.Is(err, store.ErrAuthorNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, factory.ErrUnknownPostType),
		errors.Is(err, factory.ErrInvalidPostData):
		utils.Error(ctx, http.StatusBadRequest, 40010, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("unexpected store error: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
