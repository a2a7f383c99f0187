// Package export renders student reports as downloadable Excel and PDF
// documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReportSection is one titled key/value block in a student report
type ReportSection struct {
	Title string
	Rows  [][2]string
}

// StudentReport is the renderer-independent report content
type StudentReport struct {
	StudentName string
	Grade       int
	Sections    []ReportSection
}

const sheetName = "Report"

// RenderExcel renders the report as an .xlsx workbook
func RenderExcel(report StudentReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	f.SetColWidth(sheetName, "A", "A", 35)
	f.SetColWidth(sheetName, "B", "B", 60)

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), report.StudentName)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("Клас: %d", report.Grade))
	row += 2

	for _, section := range report.Sections {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheetName, cell, section.Title)
		f.SetCellStyle(sheetName, cell, fmt.Sprintf("B%d", row), sectionStyle)
		row++

		for _, kv := range section.Rows {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), kv[0])
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), kv[1])
			row++
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
