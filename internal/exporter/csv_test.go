package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylelens/internal/dataprocessing"
	"stylelens/pkg/contracts/domain"
)

func sampleTable(t *testing.T) *domain.Table {
	t.Helper()
	input := strings.Join([]string{
		"name,brand_name,category_main,price_amount,color,availability,extra",
		"Shirt,Acme,Tops,19.99,Red,in stock,x",
		"Dress,,Dresses,oops,Blue,sold out,y",
	}, "\n")
	table, err := dataprocessing.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	return table
}

func TestDefaultColumns(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, []string{
		domain.ColName,
		domain.ColBrandName,
		domain.ColCategoryMain,
		domain.ColPriceAmount,
		domain.ColColor,
		domain.ColAvailability,
	}, DefaultColumns(table))

	bare := &domain.Table{Columns: []string{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, DefaultColumns(bare),
		"fall back to all columns when no preferred column exists")
}

func TestWrite(t *testing.T) {
	table := sampleTable(t)

	var buf bytes.Buffer
	err := Write(&buf, table, WriteOptions{Columns: []string{"name", "price_amount", "brand_name"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,price_amount,brand_name", lines[0])
	assert.Equal(t, "Shirt,19.99,Acme", lines[1])
	// coercion failure exports as an empty field; the cleaned sentinel
	// round-trips as literal text
	assert.Equal(t, "Dress,,Unknown", lines[2])
}

func TestWriteRoundTrip(t *testing.T) {
	table := sampleTable(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, WriteOptions{}))

	again, perr := dataprocessing.ParseCSV(&buf)
	require.NoError(t, perr)
	assert.Equal(t, DefaultColumns(table), again.Columns)
	assert.Equal(t, table.RowCount(), again.RowCount())
}

func TestWriteUnknownColumn(t *testing.T) {
	table := sampleTable(t)

	var buf bytes.Buffer
	werr := Write(&buf, table, WriteOptions{Columns: []string{"nope"}})
	require.Error(t, werr)
	assert.Contains(t, werr.Error(), "nope")
}

func TestWriteBOM(t *testing.T) {
	table := sampleTable(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, WriteOptions{BOMPrefix: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteFile(t *testing.T) {
	table := sampleTable(t)
	path := filepath.Join(t.TempDir(), "out", DownloadFilename)

	require.NoError(t, WriteFile(path, table, WriteOptions{}))

	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Contains(t, string(data), "Shirt")
}
