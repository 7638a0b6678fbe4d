package output

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// DefaultRetention is the per-type file limit used when none is configured.
const DefaultRetention = 10

// Recorder receives one observation per swept file.
type Recorder interface {
	ObserveSweepDeleted(kind string)
}

// Manager writes artifacts to a primary Store and optional mirrors, and
// sweeps each store down to the per-type limit.
type Manager struct {
	primary  Store
	mirrors  []Store
	limit    int
	recorder Recorder
	logger   *slog.Logger
}

func NewManager(primary Store, limit int, mirrors ...Store) *Manager {
	if limit < 1 {
		limit = DefaultRetention
	}
	return &Manager{primary: primary, mirrors: mirrors, limit: limit, logger: slog.Default()}
}

func (m *Manager) WithRecorder(r Recorder) *Manager {
	m.recorder = r
	return m
}

func (m *Manager) Limit() int { return m.limit }

// WriteArtifact stores data under filename and returns its primary location.
// Mirror failures are logged and do not fail the write.
func (m *Manager) WriteArtifact(ctx context.Context, data []byte, filename string) (string, error) {
	loc, err := m.primary.Put(ctx, filename, data)
	if err != nil {
		return "", fmt.Errorf("write artifact %s: %w", filename, err)
	}
	for _, mirror := range m.mirrors {
		if _, err := mirror.Put(ctx, filename, data); err != nil {
			m.logger.Warn("artifact mirror write failed", "file", filename, "error", err)
		}
	}
	return loc, nil
}

// SweepReport lists what one sweep removed and what it could not.
type SweepReport struct {
	Deleted []string
	Failed  []string
}

// Sweep keeps the newest limit files of each artifact type in every store.
// Files that do not follow the naming scheme are never touched. Failures
// are logged and skipped.
func (m *Manager) Sweep(ctx context.Context) SweepReport {
	var report SweepReport
	for _, s := range append([]Store{m.primary}, m.mirrors...) {
		m.sweepStore(ctx, s, &report)
	}
	return report
}

func (m *Manager) sweepStore(ctx context.Context, s Store, report *SweepReport) {
	objects, err := s.List(ctx)
	if err != nil {
		m.logger.Warn("retention sweep: list failed", "error", err)
		return
	}

	groups := map[string][]ObjectInfo{}
	for _, o := range objects {
		if key := typeKey(o.Name); key != "" {
			groups[key] = append(groups[key], o)
		}
	}

	for _, files := range groups {
		if len(files) <= m.limit {
			continue
		}
		sort.Slice(files, func(i, j int) bool {
			if files[i].CreatedAt.Equal(files[j].CreatedAt) {
				return files[i].Name < files[j].Name
			}
			return files[i].CreatedAt.Before(files[j].CreatedAt)
		})
		for _, f := range files[:len(files)-m.limit] {
			if err := s.Delete(ctx, f.Name); err != nil {
				m.logger.Warn("retention sweep: delete failed", "file", f.Name, "error", err)
				report.Failed = append(report.Failed, f.Name)
				continue
			}
			report.Deleted = append(report.Deleted, f.Name)
			if m.recorder != nil {
				m.recorder.ObserveSweepDeleted(string(KindOf(f.Name)))
			}
		}
	}
}
