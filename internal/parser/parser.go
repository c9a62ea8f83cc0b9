// Package parser normalizes raw trading-statement exports into trade records.
//
// Two formats are supported: the CSV table MT5 writes from its history tab,
// and the XML report variant. Field-level defects (an unparsable number in an
// otherwise well-formed row) are recovered by defaulting the field to zero;
// only a missing or unrecognized schema is a parse failure.
package parser

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
)

// Format selects the statement encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatXML Format = "xml"
)

var (
	ErrUnsupportedFormat = errors.New("parser: unsupported statement format")
	ErrUnknownSchema     = errors.New("parser: unrecognized statement schema")
)

// csvHeader is the fixed column order of a statement export. Commission and
// Swap may be absent from older exports.
var csvHeader = []string{"Symbol", "Type", "Volume", "Open Price", "Close Price", "Profit", "Commission", "Swap"}

const requiredColumns = 6

// Parse decodes statement content into trades, preserving row order.
// Content with a valid schema but no data rows yields an empty slice.
func Parse(content string, format Format) ([]model.Trade, error) {
	switch format {
	case FormatCSV:
		return parseCSV(content)
	case FormatXML:
		return parseXML(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseCSV(content string) ([]model.Trade, error) {
	if strings.TrimSpace(content) == "" {
		return []model.Trade{}, nil
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSchema, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	trades := []model.Trade{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownSchema, err)
		}
		// Rows without the minimum column count have no usable shape.
		if len(record) < requiredColumns {
			continue
		}
		trades = append(trades, tradeFromRecord(record))
	}

	return trades, nil
}

func validateHeader(header []string) error {
	if len(header) < requiredColumns {
		return fmt.Errorf("%w: expected at least %d columns, got %d", ErrUnknownSchema, requiredColumns, len(header))
	}
	for i, want := range csvHeader[:requiredColumns] {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrUnknownSchema, i, header[i], want)
		}
	}
	return nil
}

func tradeFromRecord(record []string) model.Trade {
	field := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	return model.Trade{
		Symbol:     strings.TrimSpace(field(0)),
		Direction:  model.ParseDirection(field(1)),
		Volume:     lenientFloat(field(2)),
		OpenPrice:  lenientFloat(field(3)),
		ClosePrice: lenientFloat(field(4)),
		Profit:     lenientFloat(field(5)),
		Commission: lenientFloat(field(6)),
		Swap:       lenientFloat(field(7)),
	}
}

// lenientFloat recovers field-level defects locally: anything unparsable
// becomes 0 and the row is kept.
func lenientFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

type xmlStatement struct {
	XMLName   xml.Name      `xml:"Positions"`
	Positions []xmlPosition `xml:"Position"`
}

type xmlPosition struct {
	Symbol     string `xml:"Symbol,attr"`
	Type       string `xml:"Type,attr"`
	Volume     string `xml:"Volume,attr"`
	OpenPrice  string `xml:"OpenPrice,attr"`
	ClosePrice string `xml:"ClosePrice,attr"`
	Profit     string `xml:"Profit,attr"`
	Commission string `xml:"Commission,attr"`
	Swap       string `xml:"Swap,attr"`
}

func parseXML(content string) ([]model.Trade, error) {
	var statement xmlStatement
	if err := xml.Unmarshal([]byte(content), &statement); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSchema, err)
	}

	trades := make([]model.Trade, 0, len(statement.Positions))
	for _, p := range statement.Positions {
		trades = append(trades, model.Trade{
			Symbol:     strings.TrimSpace(p.Symbol),
			Direction:  model.ParseDirection(p.Type),
			Volume:     lenientFloat(p.Volume),
			OpenPrice:  lenientFloat(p.OpenPrice),
			ClosePrice: lenientFloat(p.ClosePrice),
			Profit:     lenientFloat(p.Profit),
			Commission: lenientFloat(p.Commission),
			Swap:       lenientFloat(p.Swap),
		})
	}
	return trades, nil
}
