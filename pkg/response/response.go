package response

import (
	"log"
	"net/http"

	"github.com/forgelabs-dev/fitforge/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUID parses a path or query parameter as a UUID
func ParseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrInvalidInput
	}
	return id, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
