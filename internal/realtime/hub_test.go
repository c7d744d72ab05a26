package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/models"
	"learnhub/internal/response"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, hub *Hub, identity models.Identity) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity != nil {
			r = r.WithContext(contextutils.WithIdentity(r.Context(), identity))
		}
		hub.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_PublishReachesEveryConnectionOfAccount(t *testing.T) {
	hub := NewHub(nil, response.NewBuilder(nil, zap.NewNop()), zap.NewNop())
	defer hub.Close()
	learner := models.LearnerIdentity{User: &models.User{ID: "user-1"}}
	url := newTestServer(t, hub, learner)

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()

	require.Eventually(t, func() bool { return hub.Connections("user-1") == 2 }, time.Second, 10*time.Millisecond)

	hub.Publish("user-1", map[string]string{"message": "hello"})
	hub.Publish("user-2", map[string]string{"message": "not for you"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		var got map[string]string
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "hello", got["message"])
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil, response.NewBuilder(nil, zap.NewNop()), zap.NewNop())
	defer hub.Close()
	url := newTestServer(t, hub, models.EducatorIdentity{Educator: &models.Educator{ID: "edu-1"}})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Connections("edu-1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.Connections("edu-1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RejectsAnonymous(t *testing.T) {
	hub := NewHub(nil, response.NewBuilder(nil, zap.NewNop()), zap.NewNop())
	url := newTestServer(t, hub, nil)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173/"})

	req := httptest.NewRequest(http.MethodGet, "http://api.test/ws", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	req.Header.Del("Origin")
	assert.True(t, check(req))
}
