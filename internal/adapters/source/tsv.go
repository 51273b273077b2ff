package source

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/wcarank/internal/domain/model"
)

// Column names in the WCA export headers.
const (
	colPersonID        = "personId"
	colEventID         = "eventId"
	colPersonCountryID = "personCountryId"
	colBest            = "best"
	colPersonName      = "personName"
	colCountryRank     = "countryRank"
)

const (
	maxLineBytes = 1 << 20
	utf8BOM      = "\ufeff"
)

// ResultColumns and RankColumns are the header names each export must carry.
var (
	ResultColumns = []string{colPersonID, colEventID, colPersonCountryID, colBest, colPersonName}
	RankColumns   = []string{colPersonID, colEventID, colCountryRank, colBest}
)

// tsvReader walks a tab-separated stream whose first line is a header.
type tsvReader struct {
	scanner *bufio.Scanner
	index   map[string]int
	width   int // fields a row needs to reach every selected column
	line    int
}

func newTSVReader(r io.Reader, columns []string) (*tsvReader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(bufio.ScanLines)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, malformedf("read header: %v", err)
		}
		return nil, malformedf("missing header")
	}
	header := strings.Split(strings.TrimPrefix(strings.TrimRight(scanner.Text(), "\r"), utf8BOM), "\t")

	all := make(map[string]int, len(header))
	for i, name := range header {
		all[strings.TrimSpace(name)] = i
	}
	t := &tsvReader{scanner: scanner, index: make(map[string]int, len(columns)), line: 1}
	for _, c := range columns {
		i, ok := all[c]
		if !ok {
			return nil, malformedf("missing column %q", c)
		}
		t.index[c] = i
		t.width = max(t.width, i+1)
	}
	return t, nil
}

// next returns the fields of the next non-empty row, or nil at the end.
func (t *tsvReader) next() ([]string, error) {
	for t.scanner.Scan() {
		t.line++
		text := strings.TrimRight(t.scanner.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < t.width {
			return nil, malformedf("line %d: expected at least %d fields, got %d", t.line, t.width, len(fields))
		}
		return fields, nil
	}
	if err := t.scanner.Err(); err != nil {
		return nil, malformedf("line %d: %v", t.line, err)
	}
	return nil, nil
}

func (t *tsvReader) get(fields []string, column string) string {
	return fields[t.index[column]]
}

func (t *tsvReader) best(fields []string) (int32, error) {
	raw := strings.TrimSpace(t.get(fields, colBest))
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, malformedf("line %d: best %q is not a 32-bit integer", t.line, raw)
	}
	return int32(v), nil
}

// ParseResults reads a results export, keeping the columns ResultRecord needs.
func ParseResults(r io.Reader) ([]model.ResultRecord, error) {
	t, err := newTSVReader(r, ResultColumns)
	if err != nil {
		return nil, err
	}
	var out []model.ResultRecord
	for {
		fields, err := t.next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			return out, nil
		}
		best, err := t.best(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ResultRecord{
			PersonID:        t.get(fields, colPersonID),
			EventID:         t.get(fields, colEventID),
			PersonCountryID: t.get(fields, colPersonCountryID),
			Best:            best,
			PersonName:      t.get(fields, colPersonName),
		})
	}
}

// ParseRanks reads a ranks export. An empty countryRank cell becomes NaN.
func ParseRanks(r io.Reader) ([]model.RankRecord, error) {
	t, err := newTSVReader(r, RankColumns)
	if err != nil {
		return nil, err
	}
	var out []model.RankRecord
	for {
		fields, err := t.next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			return out, nil
		}
		best, err := t.best(fields)
		if err != nil {
			return nil, err
		}
		rank := math.NaN()
		if raw := strings.TrimSpace(t.get(fields, colCountryRank)); raw != "" {
			v, err := strconv.ParseFloat(raw, 32)
			if err != nil {
				return nil, malformedf("line %d: countryRank %q is not a number", t.line, raw)
			}
			rank = v
		}
		out = append(out, model.RankRecord{
			PersonID:    t.get(fields, colPersonID),
			EventID:     t.get(fields, colEventID),
			CountryRank: rank,
			Best:        best,
		})
	}
}
