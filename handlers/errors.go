package handlers

import (
	"net/http"

	"servana/services/scheduling"
	"servana/utils"

	"github.com/gin-gonic/gin"
)

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// statuses. Untyped failures become a 500 without leaking internals.
func respondSchedulingError(c *gin.Context, err error) {
	switch scheduling.CodeOf(err) {
	case scheduling.CodeNotFound:
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case scheduling.CodeUnauthenticated:
		utils.JSONError(c, http.StatusUnauthorized, "Unauthenticated", err.Error())
	case scheduling.CodeUnauthorized:
		utils.JSONError(c, http.StatusForbidden, "Unauthorized", err.Error())
	case scheduling.CodeSlotUnavailable:
		utils.JSONError(c, http.StatusConflict, "Slot unavailable", err.Error())
	case scheduling.CodeInvalidTransition:
		utils.JSONError(c, http.StatusConflict, "Invalid transition", err.Error())
	case scheduling.CodeInvalidInput:
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "The operation could not be completed. Please try again later.")
	}
}
