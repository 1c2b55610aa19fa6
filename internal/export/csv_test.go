package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type billRow struct {
	Name   string  `json:"name"`
	Amount int64   `json:"amount"`
	Remark *string `json:"remark"`
}

func TestCSVQuotesCommaFields(t *testing.T) {
	content, err := CSV([]billRow{{Name: "A,B"}}, []Column[billRow]{
		{Title: "Name", Key: "name"},
	})
	require.NoError(t, err)

	assert.Equal(t, "\ufeffName\n\"A,B\"\n", string(content))
}

func TestCSVHeaderAndRows(t *testing.T) {
	remark := "现金"
	rows := []billRow{
		{Name: "钢琴课", Amount: 15000, Remark: &remark},
		{Name: "声乐课", Amount: 20000},
	}
	columns := []Column[billRow]{
		{Title: "课程", Key: "name"},
		{Title: "金额", Value: func(r billRow) string { return "¥150" }},
		{Title: "备注", Key: "remark"},
	}

	content, err := CSV(rows, columns)
	require.NoError(t, err)

	assert.Equal(t, "\ufeff课程,金额,备注\n钢琴课,¥150,现金\n声乐课,¥150,-\n", string(content))
}

func TestCSVDerivedColumn(t *testing.T) {
	rows := []billRow{{Name: "钢琴课", Amount: 15000}}
	columns := []Column[billRow]{
		{Title: "金额", Value: func(r billRow) string { return "150.00" }},
	}

	content, err := CSV(rows, columns)
	require.NoError(t, err)

	assert.Equal(t, "\ufeff金额\n150.00\n", string(content))
}

func TestCSVMapRows(t *testing.T) {
	rows := []map[string]any{
		{"name": "A,B"},
		{},
	}
	columns := []Column[map[string]any]{
		{Title: "Name", Key: "name"},
	}

	content, err := CSV(rows, columns)
	require.NoError(t, err)

	assert.Equal(t, "\ufeffName\n\"A,B\"\n-\n", string(content))
}

func TestCSVMissingKey(t *testing.T) {
	content, err := CSV([]billRow{{Name: "x"}}, []Column[billRow]{
		{Title: "Unknown", Key: "nonexistent"},
	})
	require.NoError(t, err)

	assert.Equal(t, "\ufeffUnknown\n-\n", string(content))
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "teacher-bills_2025-03-01.csv", Filename("teacher-bills", ts))
}
