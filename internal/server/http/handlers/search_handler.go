package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/server/http/dto"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

// SearchHandler serves product, user and review searches.
type SearchHandler struct {
	facade SearchFacade
}

// NewSearchHandler constructs SearchHandler.
func NewSearchHandler(facade SearchFacade) *SearchHandler {
	return &SearchHandler{facade: facade}
}

// Products handles GET /api/products/page.
func (h *SearchHandler) Products(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := usecase.ProductQuery{Text: strings.TrimSpace(c.Query("query")), Request: req}
	if q.CategoryID, err = queryInt64(c, "categoryId"); err != nil {
		writeError(c, err)
		return
	}
	if q.StockFrom, err = queryInt(c, "stockFrom"); err != nil {
		writeError(c, err)
		return
	}
	if q.StockTo, err = queryInt(c, "stockTo"); err != nil {
		writeError(c, err)
		return
	}

	page, err := h.facade.Products(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page, toProductResponse))
}

// Users handles GET /api/users/page.
func (h *SearchHandler) Users(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := usecase.UserQuery{Text: strings.TrimSpace(c.Query("query")), Request: req}
	if q.HasNewsletter, err = queryBool(c, "hasNewsletter"); err != nil {
		writeError(c, err)
		return
	}
	if q.SegmentID, err = queryInt64(c, "segmentId"); err != nil {
		writeError(c, err)
		return
	}

	page, err := h.facade.Users(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page, toUserResponse))
}

// Reviews handles GET /api/reviews/products/:productId.
func (h *SearchHandler) Reviews(c *gin.Context) {
	productID, err := pathID(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}
	req, err := pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := usecase.ReviewQuery{ProductID: productID, Text: strings.TrimSpace(c.Query("q")), Request: req}
	if status := queryString(c, "status"); status != nil {
		s := model.ReviewStatus(strings.ToUpper(*status))
		q.Status = &s
	}
	if q.RatingMin, err = queryInt(c, "ratingMin"); err != nil {
		writeError(c, err)
		return
	}
	if q.RatingMax, err = queryInt(c, "ratingMax"); err != nil {
		writeError(c, err)
		return
	}

	page, err := h.facade.Reviews(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page, toReviewResponse))
}

func toPageResponse[T, R any](page paging.Page[T], convert func(T) R) dto.PageResponse[R] {
	content := make([]R, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, convert(item))
	}
	return dto.PageResponse[R]{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
		Page:          page.Page,
		Size:          page.Size,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Reference:    p.Reference,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Price:        dto.Money(p.Price),
		Width:        dto.OptionalNumber(p.Width),
		Height:       dto.OptionalNumber(p.Height),
		Depth:        dto.OptionalNumber(p.Depth),
		Stock:        p.Stock,
		Sales:        p.Sales,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
	}
}

func toUserResponse(u model.User) dto.UserResponse {
	segments := u.SegmentIDs
	if segments == nil {
		segments = []int64{}
	}
	return dto.UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Address:       u.Address,
		HasNewsletter: u.HasNewsletter,
		SegmentIDs:    segments,
		CreatedAt:     u.CreatedAt,
	}
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Customer: dto.ReviewCustomerResponse{
			ID:        r.CustomerID,
			FirstName: r.CustomerFirstName,
			LastName:  r.CustomerLastName,
		},
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}
