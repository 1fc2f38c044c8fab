package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
)

// pathID parses a positive identifier from the named path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domainErrors.InvalidParameterError{Name: name, Value: raw}
	}
	return id, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, &domainErrors.InvalidParameterError{Name: name, Value: raw}
	}
	return &v, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, &domainErrors.InvalidParameterError{Name: name, Value: raw}
	}
	return &v, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, &domainErrors.InvalidParameterError{Name: name, Value: raw}
	}
	return &v, nil
}

func queryString(c *gin.Context, name string) *string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// pageRequest reads page, size, sort and direction. Direction is ignored without sort.
func pageRequest(c *gin.Context) (paging.Request, error) {
	var req paging.Request

	page, err := queryInt(c, "page")
	if err != nil {
		return req, err
	}
	if page != nil {
		req.Page = *page
	}

	size, err := queryInt(c, "size")
	if err != nil {
		return req, err
	}
	if size != nil {
		if *size <= 0 {
			return req, domainErrors.ErrInvalidPageSize
		}
		req.Size = *size
	}

	if field := queryString(c, "sort"); field != nil {
		direction, err := paging.ParseDirection(c.Query("direction"))
		if err != nil {
			return req, err
		}
		req.Sort = &paging.Sort{Field: *field, Direction: direction}
	}
	return req, nil
}
