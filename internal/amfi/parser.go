package amfi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scheme is one parsed registry row.
type Scheme struct {
	Code     uint64
	Name     string
	AMC      string
	Category string

	ISINGrowth      string
	ISINDivPayout   string
	ISINDivReinvest string

	NAV  decimal.Decimal
	Date string
}

type columnMap struct {
	code     int
	name     int
	payout   int
	reinvest int
	growth   int
	nav      int
	date     int
}

// Parse reads the NAVAll dump. The file interleaves data rows with
// single-field section lines (scheme category, then fund house); those carry
// the AMC/category context for the rows that follow. Delimiter and header
// naming vary across snapshots, so both are sniffed.
func Parse(raw string) ([]Scheme, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("empty registry file")
	}

	delim := sniffDelimiter(lines[headerIdx])
	cols, err := mapHeader(strings.Split(lines[headerIdx], delim))
	if err != nil {
		return nil, err
	}
	fieldCount := len(strings.Split(lines[headerIdx], delim))

	var (
		out      []Scheme
		amc      string
		category string
	)
	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, delim)
		if len(fields) < fieldCount {
			// Section line: fund houses end in "Mutual Fund", anything else
			// is a scheme category heading.
			if strings.HasSuffix(line, "Mutual Fund") {
				amc = line
			} else {
				category = line
			}
			continue
		}

		code, err := strconv.ParseUint(strings.TrimSpace(fields[cols.code]), 10, 64)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(fields[cols.name])
		if name == "" {
			continue
		}

		s := Scheme{
			Code:     code,
			Name:     name,
			AMC:      amc,
			Category: category,
		}
		if cols.payout >= 0 {
			s.ISINDivPayout = cleanISIN(fields[cols.payout])
		}
		if cols.reinvest >= 0 {
			s.ISINDivReinvest = cleanISIN(fields[cols.reinvest])
		}
		if cols.growth >= 0 {
			s.ISINGrowth = cleanISIN(fields[cols.growth])
		}
		if cols.nav >= 0 {
			if nav, err := decimal.NewFromString(strings.TrimSpace(fields[cols.nav])); err == nil {
				s.NAV = nav
			}
		}
		if cols.date >= 0 {
			s.Date = strings.TrimSpace(fields[cols.date])
		}
		out = append(out, s)
	}
	return out, nil
}

func sniffDelimiter(header string) string {
	switch {
	case strings.Count(header, ";") >= 3:
		return ";"
	case strings.Count(header, "|") >= 3:
		return "|"
	default:
		return ","
	}
}

func mapHeader(fields []string) (columnMap, error) {
	cols := columnMap{code: -1, name: -1, payout: -1, reinvest: -1, growth: -1, nav: -1, date: -1}
	for i, f := range fields {
		lc := strings.ToLower(strings.TrimSpace(f))
		switch {
		case strings.Contains(lc, "scheme code") || lc == "schemecode":
			cols.code = i
		case strings.Contains(lc, "scheme name"):
			cols.name = i
		case strings.HasPrefix(lc, "isin") && strings.Contains(lc, "reinvest"):
			cols.reinvest = i
		case strings.HasPrefix(lc, "isin") && strings.Contains(lc, "payout"):
			cols.payout = i
		case strings.HasPrefix(lc, "isin") && strings.Contains(lc, "growth"):
			cols.growth = i
		case strings.HasPrefix(lc, "net asset") || lc == "nav":
			cols.nav = i
		case strings.Contains(lc, "date"):
			cols.date = i
		}
	}
	if cols.code < 0 || cols.name < 0 {
		return cols, fmt.Errorf("registry header missing scheme code/name columns")
	}
	return cols, nil
}

func cleanISIN(v string) string {
	v = strings.TrimSpace(v)
	if v == "-" || strings.EqualFold(v, "N.A.") {
		return ""
	}
	return v
}
