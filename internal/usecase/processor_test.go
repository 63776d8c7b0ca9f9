package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockRepo struct {
	mock.Mock
	statuses []domain.ExportStatus
}

func (m *mockRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	m.statuses = append(m.statuses, j.Status)
	return m.Called(ctx, j).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*domain.ExportJob)
	return j, args.Error(1)
}

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) LoadSnapshot(ctx context.Context, id uuid.UUID) (*model.RenderRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.RenderRequest)
	return r, args.Error(1)
}

var fakePDF = []byte("%PDF-1.7 fake")

func sampleRequest() *model.RenderRequest {
	return &model.RenderRequest{
		Content: model.ResumeContent{Projects: []model.Project{{RepoName: "ecommerce-app"}}},
		Profile: model.UserProfile{FullName: "Jane Dev"},
	}
}

func newTestProcessor(t *testing.T, r Renderer, repo ExportsRepo, snaps SnapshotSource, attempts int) *Processor {
	t.Helper()
	return NewProcessor(r, repo, snaps, Options{
		ArtifactDir: t.TempDir(),
		Attempts:    attempts,
		Backoff:     time.Millisecond,
	})
}

func TestPreviewMatchesExportMarkup(t *testing.T) {
	r := &mockRenderer{}
	var printed string
	r.On("RenderHTMLToPDF", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { printed = args.String(1) }).
		Return(fakePDF, nil)

	p := newTestProcessor(t, r, nil, nil, 1)

	preview, err := p.Preview(sampleRequest())
	require.NoError(t, err)
	pdf, err := p.RenderPDF(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, fakePDF, pdf)
	assert.Equal(t, preview, printed)
	assert.Contains(t, preview, `<h1 class="name">Jane Dev</h1>`)
}

func TestPreviewNilRequest(t *testing.T) {
	p := newTestProcessor(t, nil, nil, nil, 1)
	out, err := p.Preview(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Your Name")
}

func TestRenderPDFRetriesUntilValid(t *testing.T) {
	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed")).Once()
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return([]byte("<html>"), nil).Once()
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(fakePDF, nil).Once()

	p := newTestProcessor(t, r, nil, nil, 3)
	pdf, err := p.RenderPDF(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, fakePDF, pdf)
	r.AssertNumberOfCalls(t, "RenderHTMLToPDF", 3)
}

func TestRenderPDFGivesUp(t *testing.T) {
	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return([]byte("not a pdf"), nil)

	p := newTestProcessor(t, r, nil, nil, 2)
	_, err := p.RenderPDF(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPDF)
	r.AssertNumberOfCalls(t, "RenderHTMLToPDF", 2)
}

func TestRenderPDFStopsOnCancel(t *testing.T) {
	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	p := NewProcessor(r, nil, nil, Options{ArtifactDir: t.TempDir(), Attempts: 5, Backoff: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.RenderPDF(ctx, sampleRequest())
	assert.ErrorIs(t, err, context.Canceled)
	r.AssertNumberOfCalls(t, "RenderHTMLToPDF", 1)
}

func TestProcessInlineRequest(t *testing.T) {
	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(fakePDF, nil)
	repo := &mockRepo{}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := newTestProcessor(t, r, repo, nil, 1)
	job := &domain.ExportJob{ID: uuid.New(), Status: domain.ExportPending, Template: "ats", Request: sampleRequest()}

	require.NoError(t, p.Process(context.Background(), job))

	assert.Equal(t, domain.ExportCompleted, job.Status)
	assert.Equal(t, []domain.ExportStatus{domain.ExportRunning, domain.ExportCompleted}, repo.statuses)
	assert.Equal(t, "harvard", job.Metadata["template"])
	assert.Equal(t, 1, job.Metadata["attempts"])
	assert.Empty(t, job.Error)

	assert.Equal(t, job.ID.String()+".pdf", filepath.Base(job.PDFPath))
	pdf, err := os.ReadFile(job.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, pdf)

	html, err := os.ReadFile(job.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), `class="resume resume-harvard"`)
}

func TestProcessStoredSnapshot(t *testing.T) {
	resumeID := uuid.New()
	snaps := &mockSnapshots{}
	stored := sampleRequest()
	stored.Template = "harvard"
	snaps.On("LoadSnapshot", mock.Anything, resumeID).Return(stored, nil)

	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(fakePDF, nil)

	p := newTestProcessor(t, r, nil, snaps, 1)
	job := &domain.ExportJob{ID: uuid.New(), ResumeID: &resumeID}

	require.NoError(t, p.Process(context.Background(), job))
	assert.Equal(t, domain.ExportCompleted, job.Status)
	assert.Equal(t, "harvard", job.Metadata["template"])
	snaps.AssertExpectations(t)
}

func TestProcessKeepsHTMLWhenPrintFails(t *testing.T) {
	r := &mockRenderer{}
	r.On("RenderHTMLToPDF", mock.Anything, mock.Anything).Return(nil, errors.New("chrome missing"))
	repo := &mockRepo{}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := newTestProcessor(t, r, repo, nil, 2)
	job := &domain.ExportJob{ID: uuid.New(), Request: sampleRequest()}

	err := p.Process(context.Background(), job)

	require.Error(t, err)
	assert.Equal(t, domain.ExportFailed, job.Status)
	assert.Contains(t, job.Error, "chrome missing")
	assert.Empty(t, job.PDFPath)
	assert.FileExists(t, job.HTMLPath)
	assert.Equal(t, 2, job.Metadata["attempts"])
	assert.Equal(t, []domain.ExportStatus{domain.ExportRunning, domain.ExportFailed}, repo.statuses)
}

func TestProcessWithoutSnapshot(t *testing.T) {
	p := newTestProcessor(t, &mockRenderer{}, nil, nil, 1)
	job := &domain.ExportJob{ID: uuid.New()}

	err := p.Process(context.Background(), job)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Equal(t, domain.ExportFailed, job.Status)
}

func TestProcessSnapshotLookupFails(t *testing.T) {
	resumeID := uuid.New()
	snaps := &mockSnapshots{}
	snaps.On("LoadSnapshot", mock.Anything, resumeID).Return(nil, errors.New("not found"))

	p := newTestProcessor(t, &mockRenderer{}, nil, snaps, 1)
	job := &domain.ExportJob{ID: uuid.New(), ResumeID: &resumeID}

	err := p.Process(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, job.Error, resumeID.String())
}

func TestPreviewStoredOverridesTemplate(t *testing.T) {
	resumeID := uuid.New()
	snaps := &mockSnapshots{}
	snaps.On("LoadSnapshot", mock.Anything, resumeID).Return(sampleRequest(), nil)

	p := newTestProcessor(t, nil, nil, snaps, 1)
	out, err := p.PreviewStored(context.Background(), resumeID, "harvard")

	require.NoError(t, err)
	assert.Contains(t, out, "resume-harvard")
}
