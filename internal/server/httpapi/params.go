package httpapi

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrorValidation, name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return v, nil
}

// page reads skip and limit from the query string.
func page(c *gin.Context) (models.Page, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return models.Page{}, err
	}
	limit, err := queryInt(c, "limit", common.DefaultListLimit)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(skip, limit), nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	return nil
}
