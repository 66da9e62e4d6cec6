// Package csvstore provides the default record-file implementation of
// SnapshotStore.
//
// File layout:
//
//	ID,TYPE,TITLE,STATUS,DESCRIPTION,EPIC_ID,START_TIME,DURATION
//	1,TASK,Write report,NEW,,,2024-03-04T09:00:00Z,30m0s
//	2,EPIC,Release,NEW,,,,
//	3,SUBTASK,Tag,DONE,,2,,
//
//	3,1
//	NEXT_ID,4
//
// The blank line separates item rows from the trailer: the history line,
// then the identity counter. Files without a NEXT_ID line resume after the
// highest stored ID. Rows with only the first six columns load as
// unscheduled items.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/infra/record"
)

// Header is the first line of every record file.
var Header = []string{"ID", "TYPE", "TITLE", "STATUS", "DESCRIPTION", "EPIC_ID", "START_TIME", "DURATION"}

const legacyColumns = 6

// nextIDKey labels the identity counter line in the trailer.
const nextIDKey = "NEXT_ID"

// Store implements domain.SnapshotStore using a CSV file.
type Store struct {
	path string
}

// New creates a new Store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// IsInitialized checks if the record file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates a record file holding only the header.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if s.IsInitialized() {
		return nil
	}
	return s.Save(context.Background(), &domain.Snapshot{})
}

// Load parses the record file. A missing file yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.Snapshot{}, nil
		}
		return nil, fmt.Errorf("read record file: %w", err)
	}
	return Decode(content)
}

// Save writes the snapshot to a temp file and renames it into place.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := Encode(snap)
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Encode renders a snapshot in the record file format.
func Encode(snap *domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range record.FromSnapshot(snap) {
		if err := w.Write(toRow(r)); err != nil {
			return nil, fmt.Errorf("write record #%d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush records: %w", err)
	}

	ids := make([]string, 0, len(snap.History))
	for _, id := range snap.History {
		ids = append(ids, strconv.Itoa(id))
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Join(ids, ","))
	buf.WriteString("\n")
	if snap.NextID > 0 {
		_, _ = fmt.Fprintf(&buf, "%s,%d\n", nextIDKey, snap.NextID)
	}
	return buf.Bytes(), nil
}

// Decode parses the record file format. The first bad row fails the whole
// decode with a *domain.MalformedRecordError carrying its line number.
func Decode(content []byte) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return &domain.Snapshot{}, nil
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &domain.MalformedRecordError{Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) < legacyColumns || !strings.EqualFold(strings.TrimSpace(header[0]), "ID") {
		return nil, &domain.MalformedRecordError{Line: 1, Field: "HEADER", Value: strings.Join(header, ","), Err: errors.New("missing header")}
	}

	var (
		recs    []record.Record
		history []int
		nextID  int
	)
	for {
		// csv.Reader skips blank lines, so look for the separator directly.
		if rest, ok := afterBlankLine(content[r.InputOffset():]); ok {
			line := 1 + bytes.Count(content[:len(content)-len(rest)], []byte("\n"))
			history, nextID, err = parseTrailer(rest, line)
			if err != nil {
				return nil, err
			}
			break
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &domain.MalformedRecordError{Line: perr.Line, Err: perr.Err}
			}
			return nil, fmt.Errorf("read records: %w", err)
		}
		line, _ := r.FieldPos(0)

		rec, err := fromRow(row)
		if err == nil {
			_, err = rec.Item()
		}
		if err != nil {
			var mre *domain.MalformedRecordError
			if errors.As(err, &mre) {
				mre.Line = line
			}
			return nil, err
		}
		recs = append(recs, rec)
	}

	return record.ToSnapshot(recs, history, nextID)
}

func toRow(r record.Record) []string {
	epicID := ""
	if r.EpicID != 0 {
		epicID = strconv.Itoa(r.EpicID)
	}
	start := ""
	if r.Start != nil {
		start = r.Start.Format(time.RFC3339)
	}
	return []string{
		strconv.Itoa(r.ID),
		string(r.Kind),
		r.Title,
		string(r.Status),
		r.Description,
		epicID,
		start,
		r.Duration,
	}
}

func fromRow(row []string) (record.Record, error) {
	if len(row) != legacyColumns && len(row) != len(Header) {
		return record.Record{}, &domain.MalformedRecordError{
			Err: fmt.Errorf("expected %d or %d columns, got %d", legacyColumns, len(Header), len(row)),
		}
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return record.Record{}, &domain.MalformedRecordError{Field: "ID", Value: row[0], Err: err}
	}
	rec := record.Record{
		ID:          id,
		Kind:        domain.Kind(strings.TrimSpace(row[1])),
		Title:       row[2],
		Status:      domain.Status(strings.TrimSpace(row[3])),
		Description: row[4],
	}
	if v := strings.TrimSpace(row[5]); v != "" {
		if rec.EpicID, err = strconv.Atoi(v); err != nil {
			return record.Record{}, &domain.MalformedRecordError{Field: "EPIC_ID", Value: row[5], Err: err}
		}
	}
	if len(row) == legacyColumns {
		return rec, nil
	}

	if v := strings.TrimSpace(row[6]); v != "" {
		start, err := parseStart(v)
		if err != nil {
			return record.Record{}, &domain.MalformedRecordError{Field: "START_TIME", Value: row[6], Err: err}
		}
		rec.Start = &start
	}
	rec.Duration = strings.TrimSpace(row[7])
	return rec, nil
}

// parseStart accepts RFC 3339 and the shorter local layout used by the CLI.
func parseStart(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation(domain.TimeLayout, v, time.Local)
}

// parseTrailer reads the history line and the optional NEXT_ID line that
// follow the blank separator. line is the number of the history line.
func parseTrailer(rest []byte, line int) ([]int, int, error) {
	var (
		history []int
		nextID  int
	)
	for i, raw := range strings.Split(string(rest), "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if v, ok := strings.CutPrefix(text, nextIDKey+","); ok {
			id, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || id <= 0 {
				if err == nil {
					err = errors.New("must be positive")
				}
				return nil, 0, &domain.MalformedRecordError{Line: line + i, Field: nextIDKey, Value: v, Err: err}
			}
			nextID = id
			continue
		}
		if i > 0 {
			return nil, 0, &domain.MalformedRecordError{Line: line + i, Value: text, Err: errors.New("unexpected trailer line")}
		}
		ids, err := parseHistory(text, line)
		if err != nil {
			return nil, 0, err
		}
		history = ids
	}
	return history, nextID, nil
}

func parseHistory(text string, line int) ([]int, error) {
	parts := strings.Split(text, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, &domain.MalformedRecordError{Line: line, Field: "HISTORY", Value: p, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// afterBlankLine reports whether b starts with an empty line and returns
// what follows it.
func afterBlankLine(b []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(b, []byte("\r\n")):
		return b[2:], true
	case bytes.HasPrefix(b, []byte("\n")):
		return b[1:], true
	default:
		return nil, false
	}
}

var _ domain.SnapshotStore = (*Store)(nil)
