package evidence

import (
	"github.com/jmallard/countersign/pkg/query"
	"github.com/jmallard/countersign/pkg/repository"
)

var orderProjection = query.
	NewProjectionMap("public", "orders", "o").
	Project("id", "ID").
	Project("product_id", "ProductID").
	Project("order_number", "OrderNumber").
	Project("quantity", "Quantity").
	Project("batch", "Batch").
	Project("packaging_req", "PackagingReq").
	Project("quality_req", "QualityReq")

var productProjection = query.
	NewProjectionMap("public", "products", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("code", "Code")

var standardProjection = query.
	NewProjectionMap("public", "master_standards", "ms").
	Project("id", "ID").
	Project("product_id", "ProductID").
	Project("doc_type", "DocType").
	Project("title", "Title").
	Project("requirement", "Requirement").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var standardSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanOrder(s repository.Scanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID,
		&o.ProductID,
		&o.OrderNumber,
		&o.Quantity,
		&o.Batch,
		&o.PackagingReq,
		&o.QualityReq,
	)
	return o, err
}

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	err := s.Scan(&p.ID, &p.Name, &p.Code)
	return p, err
}

func scanStandard(s repository.Scanner) (MasterStandard, error) {
	var m MasterStandard
	err := s.Scan(
		&m.ID,
		&m.ProductID,
		&m.DocType,
		&m.Title,
		&m.Requirement,
		&m.Status,
		&m.CreatedAt,
	)
	return m, err
}
