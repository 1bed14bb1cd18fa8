package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/umputun/topnews/pkg/domain"
)

var csvHeader = []string{"section", "source", "title", "link", "summary", "published"}

// crlf folds CR LF pairs inside fields, csv reader returns them as LF
var crlf = strings.NewReplacer("\r\n", "\n")

// CSV renders entries as csv with a header row, published as RFC3339 UTC or empty.
// CR LF inside fields is written as LF, the form ParseCSV reads back.
func CSV(entries []domain.Entry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		rec := []string{e.Section, e.Source, crlf.Replace(e.Title), e.Link, crlf.Replace(e.Summary), timestamp(e)}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// ParseCSV reads entries back from CSV output
func ParseCSV(data string) ([]domain.Entry, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}

	res := []domain.Entry{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		e := domain.Entry{Section: rec[0], Source: rec[1], Title: rec[2], Link: rec[3], Summary: rec[4]}
		if rec[5] != "" {
			ts, err := time.Parse(time.RFC3339, rec[5])
			if err != nil {
				return nil, fmt.Errorf("parse published %q: %w", rec[5], err)
			}
			e.Published = &ts
		}
		res = append(res, e)
	}
	return res, nil
}
