package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/repository/postgres"
	"github.com/mira/handwriting-trainer/internal/service"
	"github.com/mira/handwriting-trainer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	notifications []*domain.Notification
}

func (r *recordingNotifier) Notify(_ uuid.UUID, n *domain.Notification) {
	r.notifications = append(r.notifications, n)
}

func newClassroomService(t *testing.T) (*service.ClassroomService, *testutil.TestDB, *recordingNotifier) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	notifier := &recordingNotifier{}
	return service.NewClassroomService(repos.Classroom, notifier), testDB, notifier
}

func TestClassroomService_CreateAndGet(t *testing.T) {
	svc, testDB, _ := newClassroomService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	classroom, err := svc.Create(ctx, service.CreateClassroomInput{
		OwnerID: owner.ID,
		Name:    "Cursive 101",
	})
	require.NoError(t, err)
	assert.Len(t, classroom.JoinCode, 6)
	assert.Equal(t, domain.ClassroomStatusActive, classroom.Status)

	t.Run("lookup by id", func(t *testing.T) {
		got, err := svc.Get(ctx, classroom.ID.String())
		require.NoError(t, err)
		assert.Equal(t, classroom.ID, got.ID)
	})

	t.Run("lookup by join code is case insensitive", func(t *testing.T) {
		got, err := svc.Get(ctx, strings.ToLower(classroom.JoinCode))
		require.NoError(t, err)
		assert.Equal(t, classroom.ID, got.ID)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Get(ctx, "ZZZZZZ")
		assert.ErrorIs(t, err, domain.ErrClassroomNotFound)
	})
}

func TestClassroomService_Join(t *testing.T) {
	svc, testDB, notifier := newClassroomService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	classroom, err := svc.Create(ctx, service.CreateClassroomInput{OwnerID: owner.ID, Name: "Print basics"})
	require.NoError(t, err)

	t.Run("join notifies the owner", func(t *testing.T) {
		_, err := svc.Join(ctx, classroom.JoinCode, student.ID)
		require.NoError(t, err)

		require.Len(t, notifier.notifications, 1)
		assert.Equal(t, domain.NotificationClassroomJoin, notifier.notifications[0].Kind)
		assert.Equal(t, owner.ID, notifier.notifications[0].UserID)
	})

	t.Run("joining twice is rejected", func(t *testing.T) {
		_, err := svc.Join(ctx, classroom.JoinCode, student.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})

	t.Run("the owner cannot join as a member", func(t *testing.T) {
		_, err := svc.Join(ctx, classroom.JoinCode, owner.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	})

	t.Run("archived classrooms reject joins", func(t *testing.T) {
		archived := testutil.NewClassroomBuilder().WithOwner(owner).Archived().Build(t, testDB.DB)
		_, err := svc.Join(ctx, archived.JoinCode, student.ID)
		assert.ErrorIs(t, err, domain.ErrClassroomArchived)
	})
}

func TestClassroomService_Update(t *testing.T) {
	svc, testDB, _ := newClassroomService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	classroom := testutil.NewClassroomBuilder().WithOwner(owner).Build(t, testDB.DB)

	t.Run("only the owner may update", func(t *testing.T) {
		name := "Renamed"
		_, err := svc.Update(ctx, classroom.ID, stranger.ID, service.UpdateClassroomInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotClassroomOwner)
	})

	t.Run("archive flips status", func(t *testing.T) {
		updated, err := svc.Update(ctx, classroom.ID, owner.ID, service.UpdateClassroomInput{Archive: true})
		require.NoError(t, err)
		assert.Equal(t, domain.ClassroomStatusArchived, updated.Status)
	})
}

func TestClassroomService_Members(t *testing.T) {
	svc, testDB, _ := newClassroomService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	member, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	outsider, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	classroom := testutil.NewClassroomBuilder().WithOwner(owner).Build(t, testDB.DB)
	testutil.AddMember(t, testDB.DB, classroom, member)

	t.Run("owner sees the roster", func(t *testing.T) {
		members, err := svc.Members(ctx, classroom.ID, owner.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("members see the roster", func(t *testing.T) {
		members, err := svc.Members(ctx, classroom.ID, member.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		_, err := svc.Members(ctx, classroom.ID, outsider.ID)
		assert.ErrorIs(t, err, domain.ErrNotMember)
	})
}
