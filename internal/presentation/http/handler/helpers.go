package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// receiptNumberParam reads the :number path parameter.
// It writes a 400 response and returns false when the value is not a positive integer.
func receiptNumberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		response.BadRequest(c, "Receipt number must be a positive integer")
		return 0, false
	}
	return number, true
}
