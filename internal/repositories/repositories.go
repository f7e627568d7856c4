package repositories

import "gorm.io/gorm"

// Repositories bundles the stores the service needs.
type Repositories struct {
	Users           UserRepository
	Resumes         ResumeRepository
	JobDescriptions JobDescriptionRepository
	Analyses        AnalysisRepository
}

func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(db),
		Resumes:         NewResumeRepository(db),
		JobDescriptions: NewJobDescriptionRepository(db),
		Analyses:        NewAnalysisRepository(db),
	}
}

// NewMemoryRepositories keeps everything in process memory. Data is lost on restart.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:           NewMemoryUserRepository(),
		Resumes:         NewMemoryResumeRepository(),
		JobDescriptions: NewMemoryJobDescriptionRepository(),
		Analyses:        NewMemoryAnalysisRepository(),
	}
}
