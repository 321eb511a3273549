package database_test

import (
	"testing"

	"notable-notes/notable/database"
	"notable-notes/notable/testutils"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	d := &database.Database{DB: db}

	assert.NotPanics(t, func() {
		d.Close()
	})
}

func TestCloseNil(t *testing.T) {
	d := &database.Database{}
	assert.NotPanics(t, func() {
		d.Close()
	})
}

func TestCloseMock(t *testing.T) {
	d, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()

	mock.ExpectClose()
	d.Close()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	d := &database.Database{DB: db}

	err = d.Execute("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	assert.NoError(t, err)
	err = d.Execute("INSERT INTO test (name) VALUES (?)", "test_name")
	assert.NoError(t, err)

	result, err := d.Query("SELECT * FROM test WHERE name = ?", "test_name")
	assert.NoError(t, err)

	var rows []map[string]interface{}
	err = result.Scan(&rows).Error
	assert.NoError(t, err)

	assert.Len(t, rows, 1)
	assert.Equal(t, "test_name", rows[0]["name"])
}

func TestExecute(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	d := &database.Database{DB: db}

	err = d.Execute("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	assert.NoError(t, err)

	err = d.Execute("INSERT INTO test (name) VALUES (?)", "test_name")
	assert.NoError(t, err)

	var count int64
	err = db.Table("test").Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, database.RunMigrations(db))

	for _, table := range []string{"users", "categories", "tags", "notes", "note_tags"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
