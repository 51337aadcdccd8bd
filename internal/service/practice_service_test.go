package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/email"
	"github.com/mira/handwriting-trainer/internal/repository/postgres"
	"github.com/mira/handwriting-trainer/internal/service"
	"github.com/mira/handwriting-trainer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newPracticeService(t *testing.T) (*service.PracticeService, *testutil.TestDB, *recordingNotifier) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	notifier := &recordingNotifier{}
	svc := service.NewPracticeService(repos.Practice, repos.Course, repos.User, email.NopSender{}, notifier)
	return svc, testDB, notifier
}

func sampleTemplate(t *testing.T) datatypes.JSON {
	t.Helper()

	data, err := json.Marshal(map[string]any{"glyphs": []string{"a"}, "guideline": "seyes"})
	require.NoError(t, err)
	return datatypes.JSON(data)
}

func TestPracticeService_CreateSet(t *testing.T) {
	svc, testDB, _ := newPracticeService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder().WithAuthor(author).Build(t, testDB.DB)
	lesson := testutil.AddLesson(t, testDB.DB, course, "Loops", 1)

	t.Run("attaches to an existing lesson", func(t *testing.T) {
		set, err := svc.CreateSet(ctx, service.CreatePracticeSetInput{
			LessonID: lesson.ID,
			AuthorID: author.ID,
			Title:    "Lowercase loops",
			Template: sampleTemplate(t),
		})
		require.NoError(t, err)
		assert.Equal(t, lesson.ID, set.LessonID)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		_, err := svc.CreateSet(ctx, service.CreatePracticeSetInput{
			LessonID: course.ID, // not a lesson ID
			AuthorID: author.ID,
			Title:    "Orphan",
			Template: sampleTemplate(t),
		})
		assert.ErrorIs(t, err, domain.ErrLessonNotFound)
	})
}

func TestPracticeService_SubmitAndScore(t *testing.T) {
	svc, testDB, notifier := newPracticeService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	student, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder().WithAuthor(author).Build(t, testDB.DB)
	lesson := testutil.AddLesson(t, testDB.DB, course, "Loops", 1)
	set := testutil.CreatePracticeSet(t, testDB.DB, lesson, author)

	strokes, _ := json.Marshal([]map[string]any{{"x": 1, "y": 2}})
	sub, err := svc.Submit(ctx, set.ID, student.ID, datatypes.JSON(strokes))
	require.NoError(t, err)
	assert.Nil(t, sub.Score)

	t.Run("score must be in range", func(t *testing.T) {
		_, err := svc.Score(ctx, sub.ID, author.ID, 101)
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
		_, err = svc.Score(ctx, sub.ID, author.ID, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
	})

	t.Run("only the set author may score", func(t *testing.T) {
		_, err := svc.Score(ctx, sub.ID, student.ID, 80)
		assert.ErrorIs(t, err, domain.ErrNotAuthor)
	})

	t.Run("scoring stores the grade and notifies the student", func(t *testing.T) {
		scored, err := svc.Score(ctx, sub.ID, author.ID, 87)
		require.NoError(t, err)
		require.NotNil(t, scored.Score)
		assert.Equal(t, 87, *scored.Score)

		require.NotEmpty(t, notifier.notifications)
		last := notifier.notifications[len(notifier.notifications)-1]
		assert.Equal(t, domain.NotificationScoreAssigned, last.Kind)
		assert.Equal(t, student.ID, last.UserID)
	})
}

func TestPracticeService_ListSubmissions(t *testing.T) {
	svc, testDB, _ := newPracticeService(t)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	studentA, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	studentB, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	course := testutil.NewCourseBuilder().WithAuthor(author).Build(t, testDB.DB)
	lesson := testutil.AddLesson(t, testDB.DB, course, "Loops", 1)
	set := testutil.CreatePracticeSet(t, testDB.DB, lesson, author)

	_, err := svc.Submit(ctx, set.ID, studentA.ID, nil)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, set.ID, studentB.ID, nil)
	require.NoError(t, err)

	t.Run("students see only their own attempts", func(t *testing.T) {
		subs, err := svc.ListSubmissions(ctx, set.ID, studentA.ID)
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("the author sees every attempt", func(t *testing.T) {
		subs, err := svc.ListSubmissions(ctx, set.ID, author.ID)
		require.NoError(t, err)
		assert.Len(t, subs, 2)
	})
}
