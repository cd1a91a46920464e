package connectors

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/domain"
)

func TestSQLiteConnector_Query(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	setup, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer setup.Close()

	_, err = setup.Exec(`CREATE TABLE product (prodid TEXT, prodname TEXT, prodlistprice REAL, prodonhand INTEGER, note BLOB)`)
	require.NoError(t, err)
	_, err = setup.Exec(`INSERT INTO product VALUES ('P1', 'Drill', 99.5, 3, x'6869'), ('P2', 'Saw', 20, 0, NULL)`)
	require.NoError(t, err)

	ctx := context.Background()
	conn, err := NewConnector(ctx, config.Database{ConnectionString: "sqlite://" + path})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Ping(ctx))

	table, err := conn.Query(ctx, "SELECT prodname, prodid, prodlistprice, prodonhand, note FROM product ORDER BY prodid")
	require.NoError(t, err)

	assert.Equal(t, []string{"prodname", "prodid", "prodlistprice", "prodonhand", "note"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, domain.Row{
		"prodname":      "Drill",
		"prodid":        "P1",
		"prodlistprice": 99.5,
		"prodonhand":    int64(3),
		"note":          "hi",
	}, table.Rows[0])
	assert.Nil(t, table.Rows[1]["note"])

	empty, err := conn.Query(ctx, "SELECT prodid FROM product WHERE prodonhand > 100")
	require.NoError(t, err)
	assert.Equal(t, []string{"prodid"}, empty.Columns)
	assert.NotNil(t, empty.Rows)
	assert.Empty(t, empty.Rows)

	_, err = conn.Query(ctx, "SELECT * FROM customerorder")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.db", sqliteDSN("sqlite:///tmp/a.db", nil))
	assert.Equal(t, "file:a.db?mode=ro", sqliteDSN("file:a.db", map[string]string{"mode": "ro"}))
	assert.Equal(t, "file:a.db?cache=shared&mode=ro", sqliteDSN("file:a.db?cache=shared", map[string]string{"mode": "ro"}))
}

func TestNewConnector_UnknownScheme(t *testing.T) {
	_, err := NewConnector(context.Background(), config.Database{ConnectionString: "oracle://scott:tiger@db"})
	assert.ErrorContains(t, err, "unable to infer connector")

	_, err = NewConnector(context.Background(), config.Database{})
	assert.ErrorContains(t, err, "missing a connection string")
}
