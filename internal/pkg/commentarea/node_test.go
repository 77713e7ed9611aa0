package commentarea

import (
	"StudentQuiz/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchNode(t *testing.T, store *memStore, viewer Viewer, activity Activity, id uint64) *Node {
	t.Helper()
	n, err := newTestContainer(store, viewer, activity).FetchOne(context.Background(), id)
	require.NoError(t, err)
	return n
}

func TestDeletePermissions(t *testing.T) {
	store := newMemStore()
	fresh := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix() - 60})
	old := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Add(-time.Hour).Unix()})

	tests := []struct {
		name   string
		viewer Viewer
		id     uint64
		ok     bool
		reason string
	}{
		{"creator within window", Viewer{UserID: 1}, fresh, true, ""},
		{"creator after window", Viewer{UserID: 1}, old, false, ReasonEditWindowExpired},
		{"other user", Viewer{UserID: 2}, fresh, false, ReasonNotCreator},
		{"moderator after window", Viewer{UserID: 3, IsModerator: true}, old, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := fetchNode(t, store, tt.viewer, Activity{}, tt.id).CanDelete()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestDeleteUndeleteRoundTrip(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix() - 60})
	ctx := context.Background()

	n := fetchNode(t, store, Viewer{UserID: 1}, Activity{}, id)
	require.NoError(t, n.Delete(ctx))
	assert.True(t, n.IsDeleted())
	assert.Equal(t, testNow.Unix(), store.comments[id].Deleted)
	require.NotNil(t, store.comments[id].DeleteUserID)
	assert.Equal(t, uint64(1), *store.comments[id].DeleteUserID)

	err := n.Delete(ctx)
	var denied *DenialError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, ReasonAlreadyDeleted, denied.Reason)

	n = fetchNode(t, store, Viewer{UserID: 1}, Activity{}, id)
	require.NoError(t, n.Undelete(ctx))
	assert.False(t, n.IsDeleted())
	assert.Zero(t, store.comments[id].Deleted)
	assert.Nil(t, store.comments[id].DeleteUserID)

	err = n.Undelete(ctx)
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, ReasonNotDeleted, denied.Reason)
}

func TestUndeleteByOtherUserDenied(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix() - 60, Deleted: testNow.Unix()})

	err := fetchNode(t, store, Viewer{UserID: 2}, Activity{}, id).Undelete(context.Background())
	var denied *DenialError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "undelete", denied.Op)
	assert.Equal(t, ReasonNotCreator, denied.Reason)
	assert.NotZero(t, store.comments[id].Deleted)
}

func TestCanReport(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: 1})
	withEmail := Activity{ReportingEmails: []string{"tutor@example.com"}}

	ok, reason := fetchNode(t, store, Viewer{UserID: 2}, Activity{}, id).CanReport()
	assert.False(t, ok)
	assert.Equal(t, ReasonReportDisabled, reason)

	ok, reason = fetchNode(t, store, Viewer{UserID: 1}, withEmail, id).CanReport()
	assert.False(t, ok)
	assert.Equal(t, ReasonReportOwnComment, reason)

	ok, _ = fetchNode(t, store, Viewer{UserID: 2}, withEmail, id).CanReport()
	assert.True(t, ok)
	ok, _ = fetchNode(t, store, Viewer{UserID: 1, IsModerator: true}, withEmail, id).CanReport()
	assert.True(t, ok)
}

func TestCanEditUnsupported(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix()})
	ok, reason := fetchNode(t, store, Viewer{UserID: 1}, Activity{}, id).CanEdit()
	assert.False(t, ok)
	assert.Equal(t, ReasonEditUnsupported, reason)
}

// flakyUsers 第一次查询之后全部失败
type flakyUsers struct {
	memUsers
	calls int
}

func (u *flakyUsers) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	u.calls++
	if u.calls > 1 {
		return nil, errors.New("user service down")
	}
	return u.memUsers.GetUserByIds(ctx, ids)
}

func TestDeleteSucceedsWhenOperatorLookupFails(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix()})
	area := NewContainer(Options{
		Store:      store,
		Users:      &flakyUsers{memUsers: testUsers()},
		QuestionID: testQuestion,
		Viewer:     Viewer{UserID: 3, IsModerator: true},
		Now:        func() time.Time { return testNow },
	})
	ctx := context.Background()

	n, err := area.FetchOne(ctx, id)
	require.NoError(t, err)
	require.NoError(t, n.Delete(ctx))
	assert.True(t, n.IsDeleted())
	assert.NotZero(t, store.comments[id].Deleted)

	view := n.ToDTO()
	assert.Equal(t, uint64(3), view.DeleteUser.ID)
	assert.Empty(t, view.DeleteUser.FirstName)
}

func TestUndeleteWindowCountsFromCreation(t *testing.T) {
	store := newMemStore()
	id := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "x", Created: testNow.Unix()})
	now := testNow
	area := func() *Container {
		return NewContainer(Options{
			Store:          store,
			Users:          testUsers(),
			QuestionID:     testQuestion,
			Viewer:         Viewer{UserID: 1},
			EditableWindow: 10 * time.Minute,
			Now:            func() time.Time { return now },
		})
	}
	ctx := context.Background()

	now = testNow.Add(500 * time.Second)
	n, err := area().FetchOne(ctx, id)
	require.NoError(t, err)
	require.NoError(t, n.Delete(ctx))

	// 删除发生在窗口内，但恢复仍以创建时间计算
	now = testNow.Add(700 * time.Second)
	n, err = area().FetchOne(ctx, id)
	require.NoError(t, err)
	err = n.Undelete(ctx)
	var denied *DenialError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, ReasonEditWindowExpired, denied.Reason)
	assert.Equal(t, testNow.Add(500*time.Second).Unix(), store.comments[id].Deleted)
}

func TestReplyCountRestoredAfterUndelete(t *testing.T) {
	store := newMemStore()
	root := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "root", Created: testNow.Unix() - 30})
	store.add(model.Comment{QuestionID: testQuestion, ParentID: root, UserID: 2, Content: "a", Created: testNow.Unix() - 20})
	reply := store.add(model.Comment{QuestionID: testQuestion, ParentID: root, UserID: 2, Content: "b", Created: testNow.Unix() - 10})
	ctx := context.Background()
	bob := Viewer{UserID: 2}

	replies := func() int {
		return fetchNode(t, store, bob, Activity{}, root).ToDTO().NumberOfReplies
	}
	before := replies()
	assert.Equal(t, 2, before)

	require.NoError(t, fetchNode(t, store, bob, Activity{}, reply).Delete(ctx))
	assert.Equal(t, 1, replies())

	require.NoError(t, fetchNode(t, store, bob, Activity{}, reply).Undelete(ctx))
	assert.Equal(t, before, replies())
}
