// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"equiprental/model"
)

// UserIDFromContext reads the user id parked by the identity middleware.
func UserIDFromContext(c echo.Context) (int64, error) {
	if id, ok := c.Get("user_id").(int64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no user id in context")
}

// RoleFromContext reads the role parked by the identity middleware.
func RoleFromContext(c echo.Context) model.Role {
	r, _ := c.Get("role").(string)
	return model.Role(r)
}
