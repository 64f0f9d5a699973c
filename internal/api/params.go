package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"user_backend/internal/feature/auth/domain"
)

// BindPathUUID reads the named path parameter as a UUID.
// A value that is not a UUID cannot name an existing user, so it is reported
// as domain.ErrUserNotFound.
func BindPathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s parameter: %v", domain.ErrUserNotFound, name, err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a uuid", domain.ErrUserNotFound, name)
	}
	return id, nil
}
