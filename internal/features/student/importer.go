package student

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseImportFile reads student rows from an uploaded CSV or XLSX file.
// The first row must be a header naming the columns; recognized headers are
// name, email, password, department, division, rollNo, attendancePercentage
// (case-insensitive).
func ParseImportFile(file io.Reader, filename string) ([]ImportRow, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format")
	}
}

func parseCSV(file io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows []ImportRow
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, rowFromRecord(headers, rec))
	}

	return rows, nil
}

func parseExcel(file io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty Excel file")
	}

	headers := records[0]
	var rows []ImportRow
	for _, rec := range records[1:] {
		rows = append(rows, rowFromRecord(headers, rec))
	}

	return rows, nil
}

func rowFromRecord(headers []string, rec []string) ImportRow {
	var row ImportRow
	for i, header := range headers {
		if i >= len(rec) {
			break
		}
		value := strings.TrimSpace(rec[i])
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "name":
			row.Name = value
		case "email":
			row.Email = value
		case "password":
			row.Password = value
		case "department":
			row.Department = value
		case "division":
			row.Division = value
		case "rollno", "roll_no":
			row.RollNo = value
		case "attendancepercentage", "attendance_percentage", "attendance":
			if pct, err := strconv.ParseFloat(value, 64); err == nil {
				row.AttendancePercentage = pct
			}
		}
	}
	return row
}
