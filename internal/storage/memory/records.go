package memory

import (
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
)

// userSegmentsTable is the bridge table exposed through Related.
const userSegmentsTable = "user_segments"

type orderRecord struct{ o *model.Order }

func (r orderRecord) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.o.ID, true
	case "order_reference":
		return r.o.Reference, true
	case "customer_id":
		return r.o.CustomerID, true
	case "status":
		return string(r.o.Status), true
	case "shipping_address":
		return r.o.ShippingAddress, true
	case "returned":
		return r.o.Returned, true
	case "grand_total":
		return r.o.GrandTotal, true
	case "created_at":
		return r.o.CreatedAt, true
	case "updated_at":
		return r.o.UpdatedAt, true
	case "deleted_at":
		return r.o.DeletedAt, true
	}
	return nil, false
}

func (orderRecord) Related(string) []any { return nil }

type productRecord struct{ p *model.Product }

func (r productRecord) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.p.ID, true
	case "reference":
		return r.p.Reference, true
	case "category_id":
		return r.p.CategoryID, true
	case "price":
		return r.p.Price, true
	case "stock":
		return r.p.Stock, true
	case "sales":
		return r.p.Sales, true
	case "description":
		return r.p.Description, true
	case "created_at":
		return r.p.CreatedAt, true
	case "deleted_at":
		return r.p.DeletedAt, true
	}
	return nil, false
}

func (productRecord) Related(string) []any { return nil }

type userRecord struct{ u *model.User }

func (r userRecord) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.u.ID, true
	case "first_name":
		return r.u.FirstName, true
	case "last_name":
		return r.u.LastName, true
	case "email":
		return r.u.Email, true
	case "has_newsletter":
		return r.u.HasNewsletter, true
	case "created_at":
		return r.u.CreatedAt, true
	case "deleted_at":
		return r.u.DeletedAt, true
	}
	return nil, false
}

func (r userRecord) Related(table string) []any {
	if table != userSegmentsTable {
		return nil
	}
	out := make([]any, 0, len(r.u.SegmentIDs))
	for _, id := range r.u.SegmentIDs {
		out = append(out, id)
	}
	return out
}

type reviewRecord struct{ r *model.Review }

func (r reviewRecord) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.r.ID, true
	case "product_id":
		return r.r.ProductID, true
	case "customer_id":
		return r.r.CustomerID, true
	case "rating":
		return r.r.Rating, true
	case "comment":
		return r.r.Comment, true
	case "status":
		return string(r.r.Status), true
	case "date":
		return r.r.Date, true
	case "created_at":
		return r.r.CreatedAt, true
	case "deleted_at":
		return r.r.DeletedAt, true
	}
	return nil, false
}

func (reviewRecord) Related(string) []any { return nil }

func viewOrder(o *model.Order) filter.Record     { return orderRecord{o} }
func viewProduct(p *model.Product) filter.Record { return productRecord{p} }
func viewUser(u *model.User) filter.Record       { return userRecord{u} }
func viewReview(r *model.Review) filter.Record   { return reviewRecord{r} }
