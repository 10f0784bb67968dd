package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliCSV = `name,brand_name,category_main,color,price_point,availability,price_amount
Shirt,Acme,Tops,Red,budget,in stock,10
Dress,Acme,Dresses,Blue,premium,In Stock - online,20
Hat,Zed,Accessories,Red,budget,sold out,30
`

func runReport(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"report"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(cliCSV), 0o644))
	return path
}

func TestReportCommand(t *testing.T) {
	dataset := writeDataset(t)
	outDir := t.TempDir()

	out, err := runReport(t, dataset, "--output-dir", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Products: 3 of 3")
	assert.Contains(t, out, "Unique brands: 2")
	assert.Contains(t, out, "Average price: 20.00")

	exported, err := os.ReadFile(filepath.Join(outDir, "filtered_fashion_data.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(exported), "Shirt")
}

func TestReportCommandFiltered(t *testing.T) {
	dataset := writeDataset(t)
	outDir := t.TempDir()

	out, err := runReport(t, dataset, "--output-dir", outDir, "--brand", "Acme", "--price-min", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "Products: 1 of 3")

	exported, err := os.ReadFile(filepath.Join(outDir, "filtered_fashion_data.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(exported), "Dress")
	assert.NotContains(t, string(exported), "Hat")
}

func TestReportCommandUnsupportedFile(t *testing.T) {
	_, err := runReport(t, "catalog.pdf")
	assert.Error(t, err)
}
