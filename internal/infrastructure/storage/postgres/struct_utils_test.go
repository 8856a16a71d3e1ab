package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shopstock/internal/core/id"
)

type timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type mockRow struct {
	timestamps
	ID       id.ID  `db:"id"`
	Name     string `db:"name"`
	Internal string `db:"-"`
	NoTag    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRow]()

	expected := []string{"created_at", "updated_at", "id", "name"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	row := mockRow{
		timestamps: timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id.New(),
		Name:       "Plain Tee",
		Internal:   "dropped",
		NoTag:      "dropped",
	}

	m := StructToMap(row)

	assert.Equal(t, row.ID, m["id"])
	assert.Equal(t, "Plain Tee", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.Len(t, m, 4)
}

func TestStructToMap_PointerAndNonStruct(t *testing.T) {
	row := &mockRow{Name: "via pointer"}
	m := StructToMap(row)
	assert.Equal(t, "via pointer", m["name"])

	assert.Nil(t, StructToMap(42))
}
