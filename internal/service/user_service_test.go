package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journal/internal/auth"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
	"github.com/aebalz/mindful-journal/internal/testutil"
)

func TestUserService_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	inval := &recordingInvalidator{}
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewJournalRepository(db),
		repository.NewArticleRepository(db),
		auth.NewTokenManager("test-secret", time.Minute),
		inval,
		zerolog.Nop(),
	)

	_, err := svc.Register(ctx, model.UserCreate{Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, model.UserCreate{Email: "kim@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	user, err := svc.Register(ctx, model.UserCreate{Email: "Kim@Example.com", Password: "longenough", FirstName: ptr("Kim")})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.NotEqual(t, "longenough", user.HashedPassword)

	_, err = svc.Register(ctx, model.UserCreate{Email: "kim@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(ctx, "kim@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(ctx, "KIM@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	me, err := svc.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	testutil.CreateEntry(t, db, user.ID, "Calm", "a calm afternoon")
	export, err := svc.Export(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, export.UserInfo.ID)
	assert.Len(t, export.JournalEntries, 1)
	assert.Empty(t, export.Articles)

	deleted, err := svc.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.DeletedUserID)
	assert.Equal(t, int64(1), deleted.DeletedEntryCount)
	assert.Equal(t, 1, inval.count())

	_, err = svc.Authenticate(ctx, token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Export(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_InactiveUser(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	svc := NewUserService(repository.NewUserRepository(db), repository.NewJournalRepository(db), repository.NewArticleRepository(db), tokens, nil, zerolog.Nop())

	user, err := svc.Register(ctx, model.UserCreate{Email: "idle@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, "idle@example.com", "longenough")
	assert.ErrorIs(t, err, ErrInactiveUser)

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInactiveUser)
}
