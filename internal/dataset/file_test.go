package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-lab/project-tally/internal/core/sales"
)

const jsonBatch = `[
  {"Order ID": "CA-1", "Order Date": "2016-11-08", "Customer ID": "CG-12520", "Customer Name": "Claire Gute",
   "State": "Kentucky", "Region": "South", "City": "Henderson", "Product Name": "Bookcase",
   "Category": "Furniture", "Sub-Category": "Bookcases", "Segment": "Consumer",
   "Sales": 261.96, "Profit": 41.9136, "Quantity": 2, "Discount": 0},
  {"Order ID": "CA-2", "Order Date": "6/12/2016", "Customer ID": "DV-13045", "Customer Name": "Darrin Van Huff",
   "State": "California", "Region": "West", "City": "Los Angeles", "Product Name": "Labels",
   "Category": "Office Supplies", "Sub-Category": "Labels", "Segment": "Corporate",
   "Sales": "14.62", "Profit": "6.8714", "Quantity": "3", "Discount": "0"}
]`

const yamlBatch = `
- Order ID: US-3
  Order Date: 2015-10-11
  Customer ID: SO-20335
  Customer Name: Sean O'Donnell
  State: Florida
  Region: South
  City: Fort Lauderdale
  Product Name: Table
  Category: Furniture
  Sub-Category: Tables
  Segment: Consumer
  Sales: 957.5775
  Profit: -383.031
  Quantity: 5
  Discount: 0.45
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "b.json", jsonBatch)
	yamlPath := writeFile(t, dir, "a.yaml", yamlBatch)

	t.Run("concatenates in configured order", func(t *testing.T) {
		records, err := NewFileSource(jsonPath, yamlPath).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, "CA-1", records[0].OrderID)
		require.Equal(t, "2016-06-12", records[1].OrderDate.String())
		require.Equal(t, sales.Quantity(3), records[1].Quantity)
		require.Equal(t, "US-3", records[2].OrderID)
		require.Equal(t, "Tables", records[2].SubCategory)
	})

	t.Run("glob matches sorted by name", func(t *testing.T) {
		records, err := NewFileSource(filepath.Join(dir, "*")).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, "US-3", records[0].OrderID)
	})
}

func TestFileSource_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"not": "an array"}`)
	csv := writeFile(t, dir, "data.csv", "Order ID,Sales\n")

	tests := []struct {
		name     string
		patterns []string
		wantIs   error
		contains string
	}{
		{name: "no patterns", patterns: nil, contains: "no dataset paths"},
		{name: "nothing matched", patterns: []string{filepath.Join(dir, "missing-*.json")}, contains: "matched no files"},
		{name: "malformed json", patterns: []string{bad}, contains: "parsing dataset file"},
		{name: "unknown extension", patterns: []string{csv}, wantIs: ErrUnsupportedFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFileSource(tc.patterns...).Load(context.Background())
			require.Error(t, err)
			if tc.wantIs != nil {
				require.ErrorIs(t, err, tc.wantIs)
			}
			if tc.contains != "" {
				require.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestFileSource_Describe(t *testing.T) {
	require.Equal(t, "file:a.json,b.yaml", NewFileSource("a.json", "b.yaml").Describe())
}
