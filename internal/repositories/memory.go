package repositories

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// memoryTable is an insert-only keyed table safe for concurrent use.
// Rows pass through clone on the way in and out, so a caller never shares
// slices or pointers with the stored record.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
	clone func(T) T
}

func newMemoryTable[T any](clone func(T) T) *memoryTable[T] {
	if clone == nil {
		clone = func(row T) T { return row }
	}
	return &memoryTable[T]{rows: make(map[uuid.UUID]T), clone: clone}
}

func (t *memoryTable[T]) insert(id uuid.UUID, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return fmt.Errorf("id %s: %w", id, ErrDuplicate)
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *memoryTable[T]) get(id uuid.UUID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	return t.clone(row), true
}

// filter returns matching rows, newest insert first.
func (t *memoryTable[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []T{}
	for i := len(t.order) - 1; i >= 0; i-- {
		row := t.rows[t.order[i]]
		if keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

type memoryUserRepository struct {
	table *memoryTable[models.User]
	// usernames serializes the uniqueness check with the insert.
	usernames sync.Mutex
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{table: newMemoryTable[models.User](nil)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.usernames.Lock()
	defer r.usernames.Unlock()

	taken := r.table.filter(func(u models.User) bool { return u.Username == user.Username })
	if len(taken) > 0 {
		return fmt.Errorf("user %q: %w", user.Username, ErrDuplicate)
	}
	return r.table.insert(user.ID, *user)
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.table.get(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	users := r.table.filter(func(u models.User) bool { return u.Username == username })
	if len(users) == 0 {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return &users[0], nil
}

func cloneResume(r models.Resume) models.Resume {
	if r.UserID != nil {
		userID := *r.UserID
		r.UserID = &userID
	}
	return r
}

type memoryResumeRepository struct {
	table *memoryTable[models.Resume]
}

func NewMemoryResumeRepository() ResumeRepository {
	return &memoryResumeRepository{table: newMemoryTable(cloneResume)}
}

func (r *memoryResumeRepository) Create(_ context.Context, resume *models.Resume) error {
	return r.table.insert(resume.ID, *resume)
}

func (r *memoryResumeRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Resume, error) {
	resume, ok := r.table.get(id)
	if !ok {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return &resume, nil
}

func (r *memoryResumeRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]models.Resume, error) {
	return r.table.filter(func(res models.Resume) bool {
		return res.UserID != nil && *res.UserID == userID
	}), nil
}

type memoryJobDescriptionRepository struct {
	table *memoryTable[models.JobDescription]
}

func NewMemoryJobDescriptionRepository() JobDescriptionRepository {
	return &memoryJobDescriptionRepository{table: newMemoryTable[models.JobDescription](nil)}
}

func (r *memoryJobDescriptionRepository) Create(_ context.Context, jd *models.JobDescription) error {
	return r.table.insert(jd.ID, *jd)
}

func (r *memoryJobDescriptionRepository) FindByID(_ context.Context, id uuid.UUID) (*models.JobDescription, error) {
	jd, ok := r.table.get(id)
	if !ok {
		return nil, fmt.Errorf("job description %s: %w", id, ErrNotFound)
	}
	return &jd, nil
}

func (r *memoryJobDescriptionRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.JobDescription, error) {
	jds := []models.JobDescription{}
	for _, id := range ids {
		if jd, ok := r.table.get(id); ok {
			jds = append(jds, jd)
		}
	}
	return jds, nil
}

func cloneAnalysis(a models.Analysis) models.Analysis {
	a.FoundKeywords = slices.Clone(a.FoundKeywords)
	a.MissingKeywords = slices.Clone(a.MissingKeywords)
	a.Recommendations = slices.Clone(a.Recommendations)
	a.FormattingChecks = slices.Clone(a.FormattingChecks)
	a.SkillsGap = slices.Clone(a.SkillsGap)
	for i := range a.SkillsGap {
		a.SkillsGap[i].Missing = slices.Clone(a.SkillsGap[i].Missing)
	}
	a.Resume, a.JobDescription = nil, nil
	return a
}

type memoryAnalysisRepository struct {
	table *memoryTable[models.Analysis]
}

func NewMemoryAnalysisRepository() AnalysisRepository {
	return &memoryAnalysisRepository{table: newMemoryTable(cloneAnalysis)}
}

func (r *memoryAnalysisRepository) Create(_ context.Context, analysis *models.Analysis) error {
	return r.table.insert(analysis.ID, *analysis)
}

func (r *memoryAnalysisRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Analysis, error) {
	analysis, ok := r.table.get(id)
	if !ok {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	return &analysis, nil
}

func (r *memoryAnalysisRepository) FindByResume(_ context.Context, resumeID uuid.UUID) ([]models.Analysis, error) {
	analyses := r.table.filter(func(a models.Analysis) bool { return a.ResumeID == resumeID })
	sortByAnalyzedAt(analyses)
	return analyses, nil
}

func (r *memoryAnalysisRepository) ListRecent(_ context.Context, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	analyses := r.table.filter(func(models.Analysis) bool { return true })
	sortByAnalyzedAt(analyses)
	if len(analyses) > limit {
		analyses = analyses[:limit]
	}
	return analyses, nil
}

// sortByAnalyzedAt orders newest first. Ties keep the newest-insert-first
// order produced by filter.
func sortByAnalyzedAt(analyses []models.Analysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].AnalyzedAt.After(analyses[j].AnalyzedAt)
	})
}
