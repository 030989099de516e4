package documents_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/jmallard/countersign/internal/documents"
)

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status documents.Status
		want   bool
	}{
		{documents.StatusPendingReview, true},
		{documents.StatusApproved, true},
		{documents.StatusRejected, true},
		{documents.Status("IN_REVIEW"), false},
		{documents.Status(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if documents.StatusPendingReview.Terminal() {
		t.Error("PENDING_REVIEW must not be terminal")
	}
	if !documents.StatusApproved.Terminal() {
		t.Error("APPROVED must be terminal")
	}
	if !documents.StatusRejected.Terminal() {
		t.Error("REJECTED must be terminal")
	}
}

func TestDocTypePackingList(t *testing.T) {
	tests := []struct {
		docType documents.DocType
		want    bool
	}{
		{documents.DocTypePackingList, true},
		{documents.DocType("Packing List"), true},
		{documents.DocType("PACKING-LIST"), true},
		{documents.DocType("vendor packing slip"), true},
		{documents.DocTypeQualityCertificate, false},
		{documents.DocType("invoice"), false},
		{documents.DocType(""), false},
	}

	for _, tt := range tests {
		if got := tt.docType.PackingList(); got != tt.want {
			t.Errorf("PackingList(%q) = %v, want %v", tt.docType, got, tt.want)
		}
	}
}

func TestPriorityNormalize(t *testing.T) {
	tests := []struct {
		priority documents.Priority
		want     documents.Priority
	}{
		{documents.PriorityHigh, documents.PriorityHigh},
		{documents.PriorityLow, documents.PriorityLow},
		{documents.Priority(""), documents.PriorityMedium},
		{documents.Priority("URGENT"), documents.PriorityMedium},
	}

	for _, tt := range tests {
		if got := tt.priority.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.priority, got, tt.want)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{documents.ErrNotFound, http.StatusNotFound},
		{documents.ErrDuplicate, http.StatusConflict},
		{documents.ErrInvalidTransition, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := documents.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("status", "PENDING_REVIEW")
	values.Set("vendor_id", "vendor-7")
	values.Set("doc_type", "packing-list")

	filters := documents.FiltersFromQuery(values)

	if filters.Status == nil || *filters.Status != "PENDING_REVIEW" {
		t.Error("status filter not extracted")
	}
	if filters.VendorID == nil || *filters.VendorID != "vendor-7" {
		t.Error("vendor filter not extracted")
	}
	if filters.DocType == nil || *filters.DocType != "packing-list" {
		t.Error("doc_type filter not extracted")
	}
	if filters.Priority != nil || filters.OrderID != nil || filters.Filename != nil {
		t.Error("absent parameters must produce nil filters")
	}
}
