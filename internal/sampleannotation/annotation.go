// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sampleannotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dropkit/dropcfg/internal/log"
)

// Column names with meaning to the pipeline.
const (
	RNAID         = "RNA_ID"
	RNABamFile    = "RNA_BAM_FILE"
	DNAVcfFile    = "DNA_VCF_FILE"
	DNAID         = "DNA_ID"
	DropGroup     = "DROP_GROUP"
	PairedEnd     = "PAIRED_END"
	CountMode     = "COUNT_MODE"
	CountOverlaps = "COUNT_OVERLAPS"
	Strand        = "STRAND"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	RNAID, RNABamFile, DNAVcfFile, DNAID, DropGroup,
	PairedEnd, CountMode, CountOverlaps, Strand,
}

// Row is one sample record keyed by column name.
type Row map[string]string

// Groups splits the DROP_GROUP cell.
func (r Row) Groups() []string {
	var groups []string
	for _, g := range strings.Split(r[DropGroup], ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// Annotation is a parsed sample annotation table.
type Annotation struct {
	file    string
	root    string
	columns []string
	rows    []Row
}

// New parses the annotation at file. root is the pipeline root the
// annotation belongs to.
func New(file string, root string) (*Annotation, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample annotation: %w", err)
	}
	defer f.Close()

	sa, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("sample annotation %s: %w", file, err)
	}
	sa.file = file
	sa.root = root
	log.Debugf("sample annotation: file=%s rows=%d", file, len(sa.rows))
	return sa, nil
}

// Parse reads a tab separated annotation with a header row. An empty input
// is an annotation without samples. Required columns are enforced once the
// first sample row is read.
func Parse(r io.Reader) (*Annotation, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		log.Debugf("sample annotation is empty")
		return &Annotation{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	sa := &Annotation{columns: header}
	seen := map[string]int{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 2 {
			if err := checkColumns(header); err != nil {
				return nil, err
			}
		}

		row := make(Row, len(header))
		for i, col := range header {
			row[col] = strings.TrimSpace(record[i])
		}
		if row[RNAID] != "" {
			if first, dup := seen[row[RNAID]]; dup {
				return nil, fmt.Errorf("duplicate %s %q on lines %d and %d", RNAID, row[RNAID], first, line)
			}
			seen[row[RNAID]] = line
		}
		sa.rows = append(sa.rows, row)
	}

	return sa, nil
}

func checkColumns(header []string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// File returns the path the annotation was read from.
func (sa *Annotation) File() string { return sa.file }

// Root returns the pipeline root passed to New.
func (sa *Annotation) Root() string { return sa.root }

// Dir returns the directory for derived annotation files beneath the root.
func (sa *Annotation) Dir() string {
	return filepath.Join(sa.root, "processed_data", "sample_anno")
}

// Columns returns the header in file order.
func (sa *Annotation) Columns() []string {
	return append([]string(nil), sa.columns...)
}

// Rows returns the sample records in file order.
func (sa *Annotation) Rows() []Row { return sa.rows }

// Len is the number of sample records.
func (sa *Annotation) Len() int { return len(sa.rows) }

// Groups returns the sorted DROP groups that contain at least one sample
// with a non-empty ID in every given assay column. With no assay every group
// is returned.
func (sa *Annotation) Groups(assays ...string) []string {
	set := map[string]struct{}{}
	for _, row := range sa.rows {
		if !row.hasAll(assays) {
			continue
		}
		for _, g := range row.Groups() {
			set[g] = struct{}{}
		}
	}
	groups := make([]string, 0, len(set))
	for g := range set {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// IDsByGroup returns the assay IDs of the samples in group, in file order and
// without duplicates.
func (sa *Annotation) IDsByGroup(group string, assay string) []string {
	var ids []string
	seen := map[string]struct{}{}
	for _, row := range sa.rows {
		id := row[assay]
		if id == "" || !contains(row.Groups(), group) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Files returns the non-empty fileColumn cells of the rows whose idColumn
// equals id.
func (sa *Annotation) Files(id string, idColumn string, fileColumn string) []string {
	var files []string
	for _, row := range sa.rows {
		if row[idColumn] == id && row[fileColumn] != "" {
			files = append(files, row[fileColumn])
		}
	}
	return files
}

func (r Row) hasAll(cols []string) bool {
	for _, c := range cols {
		if r[c] == "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
