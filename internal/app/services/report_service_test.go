package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestParseReportFormat(t *testing.T) {
	for raw, want := range map[string]ReportFormat{
		"excel": FormatExcel,
		"xlsx":  FormatExcel,
		"EXCEL": FormatExcel,
		"pdf":   FormatPDF,
		" Pdf ": FormatPDF,
	} {
		format, err := ParseReportFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, format, raw)
	}

	for _, raw := range []string{"", "docx", "csv"} {
		_, err := ParseReportFormat(raw)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, raw)
	}
}
