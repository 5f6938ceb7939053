package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/glyphfield/internal/config"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	// AnimationFile is the conventional name of a recording's GIF.
	AnimationFile = "recording.gif"
)

var ErrNotFound = errors.New("storage: recording not found")

var framesHeader = []string{"frame", "time", "cells", "lit", "mean_opacity", "max_opacity"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Recording describes a saved capture.
type Recording struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	FPS       int            `json:"fps"`
	Frames    int            `json:"frames"`
	Config    *config.Config `json:"config"`
}

// FrameStats is one row of frames.csv.
type FrameStats struct {
	Frame       int     `json:"frame"`
	Time        float64 `json:"time"`
	Cells       int     `json:"cells"`
	Lit         int     `json:"lit"`
	MeanOpacity float64 `json:"mean_opacity"`
	MaxOpacity  float64 `json:"max_opacity"`
}

// Create allocates a directory for a new recording and returns its id.
func (s *Store) Create(prefix string) (string, error) {
	if prefix == "" {
		prefix = "rec"
	}
	base := fmt.Sprintf("%s_%d", prefix, time.Now().Unix())
	id := base
	for n := 2; ; n++ {
		err := os.Mkdir(filepath.Join(s.baseDir, id), 0755)
		if err == nil {
			return id, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// validID reports whether id names a directory directly under the store.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// Path returns the location of a file inside a recording.
func (s *Store) Path(id, name string) string {
	return filepath.Join(s.baseDir, id, name)
}

// Save writes the metadata and per-frame statistics of recording meta.ID,
// creating the recording when the id is empty.
func (s *Store) Save(meta Recording, frames []FrameStats) (string, error) {
	if meta.ID == "" {
		id, err := s.Create("rec")
		if err != nil {
			return "", err
		}
		meta.ID = id
	} else if !validID(meta.ID) {
		return "", fmt.Errorf("invalid recording id %q", meta.ID)
	} else if err := os.MkdirAll(filepath.Join(s.baseDir, meta.ID), 0755); err != nil {
		return "", err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)

	metaFile, err := os.Create(s.Path(meta.ID, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(s.Path(meta.ID, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(framesHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.Itoa(f.Cells),
			strconv.Itoa(f.Lit),
			strconv.FormatFloat(f.MeanOpacity, 'f', 6, 64),
			strconv.FormatFloat(f.MaxOpacity, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable recording, newest first.
func (s *Store) List() ([]Recording, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Recording{}, nil
		}
		return nil, err
	}

	recs := make([]Recording, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *meta)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Timestamp.After(recs[j].Timestamp) })

	return recs, nil
}

func (s *Store) Load(id string) (*Recording, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := os.ReadFile(s.Path(id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Recording
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}

	return &meta, nil
}

func (s *Store) LoadStats(id string) ([]FrameStats, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	file, err := os.Open(s.Path(id, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", framesFile, err)
	}
	if len(records) < 2 {
		return []FrameStats{}, nil
	}

	stats := make([]FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		var f FrameStats
		var errs [6]error
		f.Frame, errs[0] = strconv.Atoi(rec[0])
		f.Time, errs[1] = strconv.ParseFloat(rec[1], 64)
		f.Cells, errs[2] = strconv.Atoi(rec[2])
		f.Lit, errs[3] = strconv.Atoi(rec[3])
		f.MeanOpacity, errs[4] = strconv.ParseFloat(rec[4], 64)
		f.MaxOpacity, errs[5] = strconv.ParseFloat(rec[5], 64)
		if err := errors.Join(errs[:]...); err != nil {
			continue
		}
		stats = append(stats, f)
	}

	return stats, nil
}
