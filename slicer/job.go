package slicer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/mapeditor/catalog"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Job is a slicing run described in YAML:
//
//	tileset: TileSet/forest.png
//	tile_size: 32
//	columns: 8
//	rows: 4
//	prefix: forest
//	pack: Forest
//	content_root: content
//
// Relative paths are resolved against the job file's directory.
type Job struct {
	Tileset     string `yaml:"tileset"`
	TileSize    int    `yaml:"tile_size"`
	Columns     int    `yaml:"columns"`
	Rows        int    `yaml:"rows"`
	Prefix      string `yaml:"prefix"`
	Pack        string `yaml:"pack"`
	ContentRoot string `yaml:"content_root"`
}

func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("slicer: load job %s: %w", path, err)
	}
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("slicer: unmarshal job %s: %w", path, err)
	}
	base := filepath.Dir(path)
	job.Tileset = resolve(base, job.Tileset)
	job.ContentRoot = resolve(base, job.ContentRoot)
	return job, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (j Job) Options() Options {
	return Options{TileSize: j.TileSize, Columns: j.Columns, Rows: j.Rows, Prefix: j.Prefix, Pack: j.Pack}
}

// Run validates the job, slices the tileset and writes the tiles into the
// content root. It returns the written entries.
func (j Job) Run(logger zerolog.Logger) ([]*catalog.Entry, error) {
	if err := Validate(j.Pack, j.Prefix); err != nil {
		logger.Error().Err(err).Msg("invalid slice job")
		return nil, err
	}
	if j.ContentRoot == "" {
		return nil, &catalog.ValidationError{Field: "ContentRoot", Msg: "content root can't be empty"}
	}

	img, err := catalog.ReadPNG(j.Tileset)
	if err != nil {
		return nil, fmt.Errorf("slicer: read tileset %s: %w", j.Tileset, err)
	}
	logger.Info().Str("tileset", j.Tileset).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("imported tileset")

	entries, err := Slice(img, j.Options())
	if err != nil {
		logger.Error().Err(err).Msg("slice failed")
		return nil, err
	}
	if err := Write(j.ContentRoot, entries); err != nil {
		return nil, err
	}
	logger.Info().Int("tiles", len(entries)).Str("pack", j.Pack).Msg("created and saved tiles")
	return entries, nil
}
