package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	pterm.DisableStyling()
}

const fixtureCatalog = `reports:
  - label: "Which products are in stock?"
    query: SELECT prodid, prodname FROM product WHERE prodonhand > 0
  - label: "Which products are discontinued?"
    query: SELECT prodid FROM product WHERE prodonhand < 0
  - label: "Which suppliers are late?"
    query: SELECT supplierid FROM supplierorder
`

func writeFixture(t *testing.T) (dbPath, catalogPath string) {
	t.Helper()
	dir := t.TempDir()

	dbPath = filepath.Join(dir, "reports.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE product (prodid TEXT, prodname TEXT, prodonhand INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO product VALUES ('P1', 'Drill', 3), ('P2', 'Saw', 0)`)
	require.NoError(t, err)

	catalogPath = filepath.Join(dir, "reports.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(fixtureCatalog), 0o644))
	return dbPath, catalogPath
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configFile, databaseURL, catalogFile = "", "", ""
		logLevel, verbose, hideSQL = 0, false, false
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dbPath, catalogPath := writeFixture(t)

	out, err := execute(t, "run", "--database", "sqlite://"+dbPath, "--catalog", catalogPath, "--log-level", "1")
	require.NoError(t, err)

	first := strings.Index(out, "Question 1")
	second := strings.Index(out, "Question 2")
	third := strings.Index(out, "Question 3")
	require.NotEqual(t, -1, first, out)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	assert.Contains(t, out, "Which products are in stock?")
	assert.Contains(t, out, "Drill")
	assert.NotContains(t, out, "Saw")
	assert.Contains(t, out, "No rows returned for this query.")
	assert.Contains(t, out, "Error executing query: ")
	assert.Contains(t, out, "SELECT supplierid FROM supplierorder")
	assert.True(t, strings.HasSuffix(out, "3 report(s): 1 with rows, 1 empty, 1 failed\n"), out)
}

func TestRunCommand_NoSQL(t *testing.T) {
	dbPath, catalogPath := writeFixture(t)

	out, err := execute(t, "run", "--no-sql", "--database", "sqlite://"+dbPath, "--catalog", catalogPath, "--log-level", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 3")
	assert.NotContains(t, out, "SELECT supplierid FROM supplierorder")
}

func TestListCommand(t *testing.T) {
	dbPath, catalogPath := writeFixture(t)

	out, err := execute(t, "list", "--database", "sqlite://"+dbPath, "--catalog", catalogPath, "--log-level", "1")
	require.NoError(t, err)

	assert.Contains(t, out, " 1. Which products are in stock?")
	assert.Contains(t, out, " 3. Which suppliers are late?")
	assert.Less(t, strings.Index(out, "in stock"), strings.Index(out, "discontinued"))
}
