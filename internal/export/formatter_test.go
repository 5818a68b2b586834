package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

func TestFormatCSV(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := Document{
		Dataset: enums.ExportDatasetTodaySales,
		Columns: []string{"product_name", "quantity", "sale_price"},
		Rows: [][]string{
			{"Wireless Mouse", "2", "51.00"},
			{`Desk, "Standing"`, "1", "300.00"},
		},
	}

	result, err := FormatCSV(doc, day)
	require.NoError(t, err)
	assert.Equal(t, "today_sales_2026-03-10.csv", result.Filename)
	assert.Equal(t, ContentTypeCSV, result.ContentType)
	assert.Equal(t, 2, result.RowCount)
	assert.False(t, result.Empty)

	lines := strings.Split(strings.TrimRight(string(result.Payload), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,quantity,sale_price", lines[0])
	assert.Equal(t, "Wireless Mouse,2,51.00", lines[1])
	assert.Equal(t, `"Desk, ""Standing""",1,300.00`, lines[2])
}

func TestFormatCSVEmptyDocument(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := Document{
		Dataset: enums.ExportDatasetMonthlySales,
		Columns: []string{"product_name", "quantity"},
	}

	result, err := FormatCSV(doc, day)
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Equal(t, 0, result.RowCount)
	assert.Equal(t, "product_name,quantity\n", string(result.Payload))
}

func TestFormatCSVRejectsBadInput(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := FormatCSV(Document{Dataset: "bogus", Columns: []string{"a"}}, day)
	require.Error(t, err)

	_, err = FormatCSV(Document{Dataset: enums.ExportDatasetTodaySales}, day)
	require.Error(t, err)

	_, err = FormatCSV(Document{
		Dataset: enums.ExportDatasetTodaySales,
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"only one"}},
	}, day)
	require.Error(t, err)
}
