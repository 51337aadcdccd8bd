package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEndpoints_SendAndRead(t *testing.T) {
	ts := testutil.NewTestServer(t)

	teacherBuilder := testutil.NewUserBuilder()
	teacher, teacherToken := teacherBuilder.BuildAndAuthenticate(t, ts)
	studentBuilder := testutil.NewUserBuilder()
	student, studentToken := studentBuilder.BuildAndAuthenticate(t, ts)

	classroom := testutil.NewClassroomBuilder().WithOwner(teacher).Build(t, ts.DB.DB)
	testutil.AddMember(t, ts.DB.DB, classroom, student)

	var sent struct {
		ID string `json:"id"`
	}

	t.Run("teacher messages an enrolled student", func(t *testing.T) {
		body := map[string]string{
			"recipientId": student.ID.String(),
			"body":        "Nice progress on the cursive loops.",
		}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/messages"), body, teacherToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &sent)
		require.NotEmpty(t, sent.ID)
	})

	t.Run("student sees one unread message", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/messages/unread"), nil, studentToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var count struct {
			Unread int64 `json:"unread"`
		}
		testutil.AssertJSONResponse(t, resp, &count)
		assert.Equal(t, int64(1), count.Unread)
	})

	t.Run("only the recipient can mark it read", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/messages/"+sent.ID+"/read"), nil, teacherToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)

		req = testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/messages/"+sent.ID+"/read"), nil, studentToken)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("conversation lists the exchange for both sides", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/messages/with/"+teacher.ID.String()), nil, studentToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var messages []struct {
			Body string `json:"body"`
		}
		testutil.AssertJSONResponse(t, resp, &messages)
		require.Len(t, messages, 1)
		assert.Equal(t, "Nice progress on the cursive loops.", messages[0].Body)
	})
}

func TestMessageEndpoints_RequiresSharedClassroom(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, senderToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	stranger, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	body := map[string]string{
		"recipientId": stranger.ID.String(),
		"body":        "hello?",
	}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/messages"), body, senderToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
}

func TestMessageNotification_DeliveredOverWebsocket(t *testing.T) {
	ts := testutil.NewTestServer(t)

	teacher, teacherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	student, studentToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	classroom := testutil.NewClassroomBuilder().WithOwner(teacher).Build(t, ts.DB.DB)
	testutil.AddMember(t, ts.DB.DB, classroom, student)

	listener := testutil.NewNotificationListener(t, ts, studentToken)

	body := map[string]string{
		"recipientId": student.ID.String(),
		"body":        "Your sheet is ready for review.",
	}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/messages"), body, teacherToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	n := listener.WaitFor(t, domain.NotificationMessage, 5*time.Second)
	assert.Equal(t, student.ID, n.UserID)
}
