package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/wellbeing/pkg/response"
)

// maxUserIDLen matches the width of the user_id columns.
const maxUserIDLen = 64

// userIDParam reads :user_id and writes a bad request envelope when it is unusable.
func userIDParam(c *gin.Context) (string, bool) {
	userID := c.Param("user_id")
	if !validUserID(userID) {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid user_id"))
		return "", false
	}
	return userID, true
}

func validUserID(userID string) bool {
	return userID != "" && len(userID) <= maxUserIDLen
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid "+key))
		return 0, false
	}
	return n, true
}
