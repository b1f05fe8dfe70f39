package rankings

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sirupsen/logrus"
)

// SourceFile marks tables read from the rankings directory.
const SourceFile = "file"

// Loader supplies ranking tables for a refresh.
type Loader interface {
	LoadTables(ctx context.Context) ([]model.RankingTable, error)
}

// DirLoader reads every CSV and HTML sheet in a directory, in file name
// order. Unreadable files are logged and skipped.
type DirLoader struct {
	dir    string
	logger *logrus.Logger
}

// NewDirLoader creates a loader over dir.
func NewDirLoader(dir string, logger *logrus.Logger) *DirLoader {
	return &DirLoader{dir: dir, logger: logger}
}

// Dir returns the directory being read.
func (l *DirLoader) Dir() string {
	return l.dir
}

// LoadTables implements Loader.
func (l *DirLoader) LoadTables(ctx context.Context) ([]model.RankingTable, error) {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rankings directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !isRankingFile(f.Name()) {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	tables := make([]model.RankingTable, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := l.loadFile(name)
		if err != nil {
			l.logger.WithError(err).WithField("file", name).Warn("Skipping rankings file")
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (l *DirLoader) loadFile(name string) (model.RankingTable, error) {
	path := filepath.Join(l.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return model.RankingTable{}, fmt.Errorf("failed to open rankings file: %w", err)
	}
	defer f.Close()

	entries, rejected, err := parseFile(name, f)
	if err != nil {
		return model.RankingTable{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	table := model.RankingTable{
		ID:      strings.ToLower(stem),
		Name:    stem,
		Source:  SourceFile,
		Entries: entries,
	}
	if key, err := ParseFormatKey(name); err == nil {
		table.Key = key
	} else {
		l.logger.WithField("file", name).Debug("Rankings file name carries no format; reachable by id only")
	}

	l.logger.WithFields(logrus.Fields{
		"file":     name,
		"format":   table.Key.String(),
		"players":  len(entries),
		"rejected": rejected,
	}).Info("Loaded rankings file")
	return table, nil
}

func isRankingFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".html", ".htm":
		return true
	}
	return false
}

func parseFile(name string, r io.Reader) ([]model.RankedEntry, int, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return ParseCSV(r)
	}
	return ParseHTML(r)
}
