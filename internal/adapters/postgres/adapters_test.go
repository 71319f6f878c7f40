package postgres

import "testing"

func TestConstructorsRejectNilPool(t *testing.T) {
	if _, err := NewListingStorageAdapter(nil); err == nil {
		t.Error("NewListingStorageAdapter(nil) must return an error")
	}
	if _, err := NewListingSourceAdapter(nil); err == nil {
		t.Error("NewListingSourceAdapter(nil) must return an error")
	}
	if _, err := NewRateProviderAdapter(nil); err == nil {
		t.Error("NewRateProviderAdapter(nil) must return an error")
	}
	if _, err := NewLastImportRepository(nil); err == nil {
		t.Error("NewLastImportRepository(nil) must return an error")
	}
}
