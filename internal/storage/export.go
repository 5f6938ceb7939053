package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Recording *Recording   `json:"recording"`
	Summary   Summary      `json:"summary"`
	Frames    []FrameStats `json:"frames"`
}

// Summary aggregates the per-frame statistics of a recording.
type Summary struct {
	Frames      int     `json:"frames"`
	MeanLit     float64 `json:"mean_lit"`
	MeanOpacity float64 `json:"mean_opacity"`
	PeakOpacity float64 `json:"peak_opacity"`
}

func Summarize(frames []FrameStats) Summary {
	s := Summary{Frames: len(frames)}
	if len(frames) == 0 {
		return s
	}
	for _, f := range frames {
		s.MeanLit += float64(f.Lit)
		s.MeanOpacity += f.MeanOpacity
		if f.MaxOpacity > s.PeakOpacity {
			s.PeakOpacity = f.MaxOpacity
		}
	}
	n := float64(len(frames))
	s.MeanLit /= n
	s.MeanOpacity /= n
	return s
}

func ExportJSON(w io.Writer, rec *Recording, frames []FrameStats) error {
	data := ExportData{
		Recording: rec,
		Summary:   Summarize(frames),
		Frames:    frames,
	}
	if data.Frames == nil {
		data.Frames = []FrameStats{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export writes the recording id as JSON to w.
func (s *Store) Export(id string, w io.Writer) error {
	rec, err := s.Load(id)
	if err != nil {
		return err
	}
	frames, err := s.LoadStats(id)
	if err != nil {
		return err
	}
	return ExportJSON(w, rec, frames)
}
