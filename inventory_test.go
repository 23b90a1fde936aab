package folio

import "testing"

func lot(units Amount, cost *Cost) Position { return Position{Units: units, Cost: cost} }

func TestInventory_Add(t *testing.T) {
	usd500 := func(on string) *Cost {
		c := &Cost{Number: dec("500"), Currency: "USD"}
		if on != "" {
			c.Date = day(on)
		}
		return c
	}

	testCases := []struct {
		name string
		adds []Position
		want string
	}{
		{
			name: "cash merges",
			adds: []Position{lot(EUR("10"), nil), lot(EUR("5"), nil)},
			want: "15 EUR",
		},
		{
			name: "zero is ignored",
			adds: []Position{lot(EUR("0"), nil)},
			want: "",
		},
		{
			name: "lot reaching zero disappears",
			adds: []Position{lot(EUR("10"), nil), lot(USD("1"), nil), lot(EUR("-10"), nil)},
			want: "1 USD",
		},
		{
			name: "lots at different dates are kept apart",
			adds: []Position{
				lot(A(10, "HOOL"), usd500("2024-01-01")),
				lot(A(5, "HOOL"), usd500("2024-02-01")),
			},
			want: "10 HOOL {500 USD, 2024-01-01}, 5 HOOL {500 USD, 2024-02-01}",
		},
		{
			name: "reduction without date is FIFO",
			adds: []Position{
				lot(A(10, "HOOL"), usd500("2024-01-01")),
				lot(A(5, "HOOL"), usd500("2024-02-01")),
				lot(A(-12, "HOOL"), usd500("")),
			},
			want: "3 HOOL {500 USD, 2024-02-01}",
		},
		{
			name: "reduction beyond the lots leaves a short lot",
			adds: []Position{
				lot(A(10, "HOOL"), usd500("2024-01-01")),
				lot(A(-12, "HOOL"), usd500("")),
			},
			want: "-2 HOOL {500 USD}",
		},
		{
			name: "reduction with a dated cost matches exactly",
			adds: []Position{
				lot(A(10, "HOOL"), usd500("2024-01-01")),
				lot(A(5, "HOOL"), usd500("2024-02-01")),
				lot(A(-5, "HOOL"), usd500("2024-02-01")),
			},
			want: "10 HOOL {500 USD, 2024-01-01}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var inv Inventory
			for _, p := range tc.adds {
				inv.Add(p)
			}
			if got := inv.String(); got != tc.want {
				t.Errorf("Inventory = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInventory_Merge(t *testing.T) {
	var a, b Inventory
	a.Add(lot(EUR("10"), nil))
	b.Add(lot(EUR("5"), nil))
	b.Add(lot(USD("3"), nil))

	merged := a.Merge(b)
	if got, want := merged.String(), "15 EUR, 3 USD"; got != want {
		t.Errorf("Merge() = %q, want %q", got, want)
	}
	if got, want := a.String(), "10 EUR"; got != want {
		t.Errorf("Merge() modified its receiver: %q, want %q", got, want)
	}
}

func TestPosition_CostAmount(t *testing.T) {
	testCases := []struct {
		pos  Position
		want Amount
	}{
		{lot(A(10, "HOOL"), &Cost{Number: dec("500.50"), Currency: "USD"}), USD("5005.00")},
		{lot(EUR("12.5"), nil), EUR("12.5")},
	}
	for _, tc := range testCases {
		if got := tc.pos.CostAmount(); !got.Equal(tc.want) {
			t.Errorf("%v.CostAmount() = %v, want %v", tc.pos, got, tc.want)
		}
	}
}
