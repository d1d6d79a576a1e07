package httptransport

import (
	"github.com/gin-gonic/gin"

	apierrors "ocr-gateway/internal/platform/errors"
)

// ErrorBody is the sole error wire shape: the code mirrors the HTTP status.
type ErrorBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// RespondError writes the classified error as a JSON body with the status
// the taxonomy maps it to.
func RespondError(c *gin.Context, err error) {
	status := apierrors.HTTPStatus(apierrors.KindOf(err))
	c.JSON(status, ErrorBody{
		Code:  status,
		Error: apierrors.PublicMessage(err),
	})
}

// AbortError is RespondError for middleware: it also stops the handler
// chain.
func AbortError(c *gin.Context, err error) {
	status := apierrors.HTTPStatus(apierrors.KindOf(err))
	c.AbortWithStatusJSON(status, ErrorBody{
		Code:  status,
		Error: apierrors.PublicMessage(err),
	})
}
