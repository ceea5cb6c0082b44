package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter flattens a sectioned document into a single CSV. Each
// section's label values repeat on every one of its rows, ahead of the
// table columns, so the month grouping the PDF shows as headings
// survives the flat format.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes for a document. labelHeaders names the
// per-section columns in output order; the table columns of the first
// section follow and must be shared by every section.
func (e *CSVExporter) Render(doc Document, labelHeaders []string) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("csv requires at least one section")
	}
	tableHeaders := doc.Sections[0].Table.Headers
	if len(labelHeaders)+len(tableHeaders) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := make([]string, 0, len(labelHeaders)+len(tableHeaders))
	header = append(header, labelHeaders...)
	header = append(header, tableHeaders...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	for _, section := range doc.Sections {
		for _, row := range section.Table.Rows {
			record := make([]string, 0, len(header))
			for _, label := range labelHeaders {
				record = append(record, section.Labels[label])
			}
			for _, column := range tableHeaders {
				record = append(record, row[column])
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
