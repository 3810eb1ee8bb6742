// Package project handles persistence of cutting jobs and application
// configuration as JSON files.
package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
)

// Job is a saved cutting job: the part requests, the stock settings used,
// and optionally the packing results of the last run.
type Job struct {
	Name     string               `json:"name"`
	SavedAt  time.Time            `json:"saved_at"`
	Settings model.CutSettings    `json:"settings"`
	Parts    []model.PartRequest  `json:"parts"`
	Results  []engine.GroupResult `json:"results,omitempty"`
}

// SaveJob persists a job to the given path as JSON. It creates any
// missing parent directories automatically and stamps the save time.
func SaveJob(path string, job Job) error {
	if job.Name == "" {
		job.Name = jobNameFromPath(path)
	}
	job.SavedAt = time.Now().UTC()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job from the given path.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, err
	}
	if len(job.Parts) == 0 {
		return Job{}, errors.New("job file has no parts")
	}
	if job.Name == "" {
		job.Name = jobNameFromPath(path)
	}
	return job, nil
}

func jobNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
