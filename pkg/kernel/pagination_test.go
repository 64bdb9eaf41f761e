package kernel

import (
	"math"
	"testing"
)

func TestPaginateSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := PaginateSlice(items, PaginationOptions{Page: 1, PageSize: 2})
	if len(p.Items) != 2 || p.Items[0] != 1 {
		t.Fatalf("unexpected first page: %v", p.Items)
	}
	if p.Page.Pages != 3 || p.Page.Total != 5 || p.Page.Number != 1 {
		t.Fatalf("unexpected page metadata: %+v", p.Page)
	}

	last := PaginateSlice(items, PaginationOptions{Page: 3, PageSize: 2})
	if len(last.Items) != 1 || last.Items[0] != 5 {
		t.Fatalf("unexpected last page: %v", last.Items)
	}

	beyond := PaginateSlice(items, PaginationOptions{Page: 9, PageSize: 2})
	if !beyond.Empty || len(beyond.Items) != 0 {
		t.Fatalf("expected empty page beyond the end, got %v", beyond.Items)
	}
}

func TestPaginationDefaults(t *testing.T) {
	opts := PaginationOptions{}.Normalize()
	if opts.Page != DefaultPage || opts.PageSize != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if TotalPages(0, 10) != 0 || TotalPages(10, 10) != 1 || TotalPages(11, 10) != 2 {
		t.Fatalf("TotalPages must be ceil(total/size)")
	}
}

func TestPaginateSliceHugeValues(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	farPage := PaginateSlice(items, PaginationOptions{Page: math.MaxInt, PageSize: 10})
	if !farPage.Empty || farPage.Page.Total != 5 || farPage.Page.Pages != 1 {
		t.Fatalf("expected an empty page for the last int page, got %+v", farPage)
	}

	hugeSize := PaginateSlice(items, PaginationOptions{Page: 2, PageSize: math.MaxInt})
	if !hugeSize.Empty || hugeSize.Page.Pages != 1 {
		t.Fatalf("expected an empty second page, got %+v", hugeSize)
	}

	all := PaginateSlice(items, PaginationOptions{Page: 1, PageSize: math.MaxInt})
	if len(all.Items) != 5 || all.Items[4] != 5 {
		t.Fatalf("expected every item on the first page, got %v", all.Items)
	}

	both := PaginateSlice(items, PaginationOptions{Page: math.MaxInt, PageSize: math.MaxInt})
	if !both.Empty {
		t.Fatalf("expected an empty page, got %v", both.Items)
	}
}

func TestOffsetSaturates(t *testing.T) {
	if got := (PaginationOptions{Page: math.MaxInt, PageSize: 10}).Offset(); got != math.MaxInt {
		t.Fatalf("offset must saturate, got %d", got)
	}
	if got := (PaginationOptions{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("unexpected offset %d", got)
	}
	if start, end := (PaginationOptions{Page: 2, PageSize: math.MaxInt}).Bounds(5); start != 5 || end != 5 {
		t.Fatalf("unexpected bounds %d %d", start, end)
	}
	if TotalPages(5, math.MaxInt) != 1 {
		t.Fatalf("TotalPages must not overflow")
	}
}
