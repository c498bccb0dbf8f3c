package common

import (
	"strings"
	"testing"
)

func TestGenerateTxnNumber(t *testing.T) {
	txn := GenerateTxnNumber()
	if !strings.HasPrefix(txn, "TXN-") {
		t.Errorf("Expected TXN- prefix, got %s", txn)
	}

	parts := strings.Split(txn, "-")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 segments, got %d (%s)", len(parts), txn)
	}
	if len(parts[2]) != 3 {
		t.Errorf("Expected 3-digit suffix, got %q", parts[2])
	}
	for _, char := range parts[1] + parts[2] {
		if char < '0' || char > '9' {
			t.Errorf("Invalid character found: %c", char)
		}
	}
}

func TestMaskCardNumber(t *testing.T) {
	masked := MaskCardNumber("4111111111111111")
	if masked != "411111******1111" {
		t.Errorf("Expected 411111******1111, got %s", masked)
	}
	if MaskCardNumber("1234") != "****" {
		t.Errorf("Short input should be fully masked, got %s", MaskCardNumber("1234"))
	}
	if MaskCardNumber("") != "" {
		t.Errorf("Empty input should stay empty")
	}
}

func TestPaginateResponse(t *testing.T) {
	// Test case 1: Normal pagination
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Test case 2: Last page
	page = 10
	res = PaginateResponse(data, total, page, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	// Test case 3: Middle page
	page = 5
	res = PaginateResponse(data, total, page, limit, "")
	if res.PrevPage != 4 {
		t.Errorf("Expected PrevPage 4, got %d", res.PrevPage)
	}
	if res.NextPage != 6 {
		t.Errorf("Expected NextPage 6, got %d", res.NextPage)
	}
}
