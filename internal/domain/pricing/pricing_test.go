package pricing

import "testing"

func TestShouldUpdate(t *testing.T) {
	cases := []struct {
		name        string
		storefront  string
		marketplace string
		want        bool
	}{
		{"five percent above", "100.00", "105.00", true},
		{"half percent above", "100.00", "100.50", false},
		{"exactly one percent", "100.00", "101.00", false},
		{"just over one percent", "100.00", "101.01", true},
		{"five percent below", "105.00", "100.00", true},
		{"zero storefront small diff", "0", "0.005", false},
		{"zero storefront real diff", "0.00", "0.02", true},
		{"sub unit storefront uses floor", "0.50", "0.51", false},
		{"identical", "99.99", "99.99", false},
		{"bad storefront", "abc", "100.00", false},
		{"empty marketplace", "100.00", "", false},
		{"whitespace tolerated", " 100.00 ", " 105.00 ", true},
	}

	for _, tc := range cases {
		got := ShouldUpdate(tc.storefront, tc.marketplace)
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
