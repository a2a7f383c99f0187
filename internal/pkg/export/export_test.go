package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() StudentReport {
	return StudentReport{
		StudentName: "Иван Петров",
		Grade:       11,
		Sections: []ReportSection{
			{Title: "Профил", Rows: [][2]string{
				{"Специалност", "Софтуерни науки"},
				{"Среден успех", "5.50"},
			}},
			{Title: "Кредити", Rows: [][2]string{
				{"Мислене — Олимпиада по математика", "потвърден"},
			}},
		},
	}
}

func TestRenderExcel(t *testing.T) {
	data, err := RenderExcel(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}
	assert.Contains(t, flat, "Профил")
	assert.Contains(t, flat, "Специалност")
	assert.Contains(t, flat, "5.50")
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

func TestRenderExcelEmptySections(t *testing.T) {
	data, err := RenderExcel(StudentReport{StudentName: "Ученик №1", Grade: 8})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
