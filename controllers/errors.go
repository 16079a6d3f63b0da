package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/middlewares"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError writes a typed service failure with its reason, and
// hides anything else behind a generic 500.
func respondServiceError(c *gin.Context, err error) {
	if typed := services.AsServiceError(err); typed != nil {
		utils.RespondReason(c, typed.HTTPStatus(), typed.Reason, typed.Message)
		return
	}
	utils.ErrorLogger.WithError(err).WithFields(map[string]interface{}{
		"path":       c.FullPath(),
		"request_id": c.GetString("request_id"),
	}).Error("request failed")
	utils.RespondError(c, http.StatusInternalServerError, errInternal)
}

func respondBadRequest(c *gin.Context, err error) {
	utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, err.Error())
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requesterFrom builds the ledger requester from the auth middleware's context.
func requesterFrom(c *gin.Context) services.Requester {
	role := c.GetString(middlewares.CtxRole)
	return services.Requester{
		UserID: c.GetUint(middlewares.CtxUserID),
		Name:   c.GetString(middlewares.CtxUserName),
		Staff:  models.User{Role: role}.IsStaff(),
	}
}
