package middleware

import (
	"net/http"
	"strconv"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/gin-gonic/gin"
)

// BodySizeGuard rejects requests whose declared Content-Length exceeds maxBytes
// with 413 before any body is read. A missing or malformed header is treated as
// unknown size and passed through; the actual bytes read are not capped here.
func BodySizeGuard(maxBytes int64) gin.HandlerFunc {
	detail := dto.ErrorResponse{Detail: dto.TooLargeDetail(maxBytes)}

	return func(c *gin.Context) {
		if size, ok := declaredLength(c.GetHeader("Content-Length")); ok && size > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, detail)
			return
		}
		c.Next()
	}
}

func declaredLength(header string) (int64, bool) {
	if header == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(header, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
