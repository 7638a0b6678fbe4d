package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"cv-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func writeAged(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o644))
	ts := base.Add(-age)
	require.NoError(t, os.Chtimes(p, ts, ts))
}

func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestSweep_KeepsNewestPerType(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		writeAged(t, dir, fmt.Sprintf("cv_Job_%02d.pdf", i), time.Duration(i)*time.Hour)
	}
	writeAged(t, dir, "cover_letter_en_Job_a.pdf", time.Hour)
	writeAged(t, dir, "cover_letter_en_Job_b.pdf", 2*time.Hour)
	writeAged(t, dir, "cover_letter_en_Job_c.pdf", 3*time.Hour)

	rec := &countRecorder{}
	report := NewManager(NewLocalStore(dir), 10).WithRecorder(rec).Sweep(context.Background())

	// the two oldest CVs are 10 and 11 hours old
	assert.ElementsMatch(t, []string{"cv_Job_10.pdf", "cv_Job_11.pdf"}, report.Deleted)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 2, rec.n)

	left := names(t, dir)
	assert.Len(t, left, 13)
	assert.Contains(t, left, "cover_letter_en_Job_c.pdf")
	assert.Contains(t, left, "cv_Job_00.pdf")
}

func TestSweep_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeAged(t, dir, fmt.Sprintf("merged_application_Job_%d.pdf", i), time.Duration(i)*time.Minute)
	}
	m := NewManager(NewLocalStore(dir), 2)

	first := m.Sweep(context.Background())
	assert.Len(t, first.Deleted, 3)
	after := names(t, dir)

	second := m.Sweep(context.Background())
	assert.Empty(t, second.Deleted)
	assert.Equal(t, after, names(t, dir))
	assert.Equal(t, []string{"merged_application_Job_0.pdf", "merged_application_Job_1.pdf"}, after)
}

func TestSweep_PartitionsByKindAndExtension(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "cv_A_1.pdf", 3*time.Hour)
	writeAged(t, dir, "cv_A_2.pdf", 2*time.Hour)
	writeAged(t, dir, "cv_A_1.md", 3*time.Hour)
	writeAged(t, dir, "cover_letter_zh_A_1.pdf", 5*time.Hour)
	writeAged(t, dir, "notes.txt", 100*time.Hour)
	writeAged(t, dir, "random.pdf", 100*time.Hour)

	report := NewManager(NewLocalStore(dir), 1).Sweep(context.Background())
	assert.Equal(t, []string{"cv_A_1.pdf"}, report.Deleted)
	assert.Equal(t, []string{"cover_letter_zh_A_1.pdf", "cv_A_1.md", "cv_A_2.pdf", "notes.txt", "random.pdf"}, names(t, dir))
}

func TestSweep_MissingDirectory(t *testing.T) {
	report := NewManager(NewLocalStore(filepath.Join(t.TempDir(), "nope")), 10).Sweep(context.Background())
	assert.Empty(t, report.Deleted)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

func (m *mockStore) List(ctx context.Context) ([]ObjectInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ObjectInfo), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type countRecorder struct{ n int }

func (c *countRecorder) ObserveSweepDeleted(string) { c.n++ }

func TestSweep_DeleteFailureIsSkipped(t *testing.T) {
	s := &mockStore{}
	s.On("List", mock.Anything).Return([]ObjectInfo{
		{Name: "cv_a.pdf", CreatedAt: base.Add(-3 * time.Hour)},
		{Name: "cv_b.pdf", CreatedAt: base.Add(-2 * time.Hour)},
		{Name: "cv_c.pdf", CreatedAt: base.Add(-1 * time.Hour)},
	}, nil)
	s.On("Delete", mock.Anything, "cv_a.pdf").Return(errors.New("locked"))
	s.On("Delete", mock.Anything, "cv_b.pdf").Return(nil)

	report := NewManager(s, 1).Sweep(context.Background())
	assert.Equal(t, []string{"cv_b.pdf"}, report.Deleted)
	assert.Equal(t, []string{"cv_a.pdf"}, report.Failed)
	s.AssertNotCalled(t, "Delete", mock.Anything, "cv_c.pdf")
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	mirror := &mockStore{}
	mirror.On("Put", mock.Anything, "cv_Job_20240501_120000.pdf", []byte("%PDF")).Return("", errors.New("bucket down"))

	m := NewManager(NewLocalStore(dir), 10, mirror)
	loc, err := m.WriteArtifact(context.Background(), []byte("%PDF"), "cv_Job_20240501_120000.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cv_Job_20240501_120000.pdf"), loc)
	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	mirror.AssertExpectations(t)

	_, err = m.WriteArtifact(context.Background(), []byte("x"), "../escape.pdf")
	assert.Error(t, err)
}

func TestNewManager_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultRetention, NewManager(NewLocalStore(t.TempDir()), 0).Limit())
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "cv_Go_Engineer_20240102_030405.pdf", Filename(domain.KindCV, "Go_Engineer", ts, ".pdf"))
	assert.Equal(t, "merged_application_20240102_030405.pdf", Filename(domain.KindMerged, "", ts, ".pdf"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindCV, KindOf("cv_x_1.pdf"))
	assert.Equal(t, domain.KindCoverLetterEN, KindOf("cover_letter_en_x_1.pdf"))
	assert.Equal(t, domain.KindCoverLetterZH, KindOf("cover_letter_zh_x_1.md"))
	assert.Equal(t, domain.KindMerged, KindOf("merged_application_x_1.pdf"))
	assert.Equal(t, domain.ArtifactKind(""), KindOf("cvs.pdf"))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Senior_Go_Engineer", SafeFilename("Senior Go Engineer"))
	assert.Equal(t, "RD_Engineer", SafeFilename(`R/D: Engineer?`))
	assert.Equal(t, "Job", SafeFilename(` <>|*" `))
	assert.Equal(t, "資深工程師", SafeFilename("資深工程師"))
}
