package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
)

func TestUserServiceCreate(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc := NewUserService(repos.Users, repos.Resumes)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.CreateUserRequest{Username: "  jane.doe "})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", user.Username)

	_, err = svc.Create(ctx, models.CreateUserRequest{Username: "jane.doe"})
	assert.ErrorIs(t, err, ErrValidation)

	for _, bad := range []string{"", "ab", "has space", "semi;colon"} {
		_, err := svc.Create(ctx, models.CreateUserRequest{Username: bad})
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestUserServiceListResumes(t *testing.T) {
	repos := repositories.NewMemoryRepositories()
	svc := NewUserService(repos.Users, repos.Resumes)
	ctx := context.Background()

	user, err := svc.Create(ctx, models.CreateUserRequest{Username: "sam"})
	require.NoError(t, err)

	owner := user.ID
	require.NoError(t, repos.Resumes.Create(ctx, &models.Resume{
		ID: uuid.New(), UserID: &owner, Filename: "a.pdf", OriginalText: "text", UploadedAt: time.Now(),
	}))
	require.NoError(t, repos.Resumes.Create(ctx, &models.Resume{
		ID: uuid.New(), Filename: "b.pdf", OriginalText: "text", UploadedAt: time.Now(),
	}))

	resumes, err := svc.ListResumes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, "a.pdf", resumes[0].Filename)

	_, err = svc.ListResumes(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
