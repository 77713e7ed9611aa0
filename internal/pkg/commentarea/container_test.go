package commentarea

import (
	"StudentQuiz/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootIDs(nodes []*Node) []uint64 {
	ids := make([]uint64, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID())
	}
	return ids
}

func seedRoots(store *memStore, n int) []uint64 {
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, store.add(model.Comment{
			QuestionID: testQuestion,
			UserID:     uint64(i%3 + 1),
			Content:    "root",
			Created:    testNow.Unix() - int64(1000-i),
		}))
	}
	return ids
}

func TestFetchAllWindowKeepsNewestRoots(t *testing.T) {
	store := newMemStore()
	ids := seedRoots(store, 7)
	area := newTestContainer(store, Viewer{UserID: 1}, Activity{})

	asc, err := area.FetchAll(context.Background(), 5, SortFeature{SortByDate, SortAsc})
	require.NoError(t, err)
	assert.Equal(t, ids[2:], rootIDs(asc))

	desc, err := area.FetchAll(context.Background(), 5, SortFeature{SortByDate, SortDesc})
	require.NoError(t, err)
	assert.ElementsMatch(t, rootIDs(asc), rootIDs(desc))
	assert.Equal(t, ids[6], desc[0].ID())

	all, err := area.FetchAll(context.Background(), ShowAll, DefaultSort)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestFetchAllDowngradesNameSortWhenAnonymized(t *testing.T) {
	store := newMemStore()
	seedRoots(store, 2)
	area := newTestContainer(store, Viewer{UserID: 1}, Activity{AnonymRank: true})

	_, err := area.FetchAll(context.Background(), ShowAll, SortFeature{SortByFirstName, SortDesc})
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, store.lastQuery.Sort)

	mod := newTestContainer(store, Viewer{UserID: 1, IsModerator: true}, Activity{AnonymRank: true})
	_, err = mod.FetchAll(context.Background(), ShowAll, SortFeature{SortByFirstName, SortDesc})
	require.NoError(t, err)
	assert.Equal(t, SortByFirstName, store.lastQuery.Sort.Field)
}

func TestFetchAllAttachesReplies(t *testing.T) {
	store := newMemStore()
	root := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "root", Created: 100})
	r1 := store.add(model.Comment{QuestionID: testQuestion, ParentID: root, UserID: 2, Content: "a", Created: 110})
	store.add(model.Comment{QuestionID: testQuestion, ParentID: root, UserID: 3, Content: "b", Created: 120, Deleted: 130})
	store.add(model.Comment{QuestionID: testQuestion + 1, UserID: 1, Content: "other", Created: 100})
	area := newTestContainer(store, Viewer{UserID: 1}, Activity{})

	nodes, err := area.FetchAll(context.Background(), ShowAll, DefaultSort)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Replies(), 2)
	assert.Equal(t, r1, nodes[0].Replies()[0].ID())
	assert.Equal(t, 2, nodes[0].TotalReplies(true))
	assert.Equal(t, 1, nodes[0].TotalReplies(false))
	assert.Equal(t, 1, nodes[0].ToDTO().NumberOfReplies)
}

func TestFetchOne(t *testing.T) {
	store := newMemStore()
	root := store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "root", Created: 100})
	reply := store.add(model.Comment{QuestionID: testQuestion, ParentID: root, UserID: 2, Content: "reply", Created: 110})
	other := store.add(model.Comment{QuestionID: testQuestion + 1, UserID: 1, Content: "other", Created: 100})
	area := newTestContainer(store, Viewer{UserID: 1}, Activity{})
	ctx := context.Background()

	n, err := area.FetchOne(ctx, root)
	require.NoError(t, err)
	assert.True(t, n.IsRoot())
	assert.Len(t, n.Replies(), 1)

	n, err = area.FetchOne(ctx, reply)
	require.NoError(t, err)
	assert.Equal(t, reply, n.ID())
	assert.Equal(t, root, n.ParentID())

	_, err = area.FetchOne(ctx, other)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	_, err = area.FetchOne(ctx, 999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCreateComment(t *testing.T) {
	store := newMemStore()
	area := newTestContainer(store, Viewer{UserID: 2}, Activity{})
	ctx := context.Background()

	for _, empty := range []string{"   ", "<p></p>", "<p>&nbsp;</p>", "<br>", "<p><script>x()</script></p>"} {
		_, err := area.CreateComment(ctx, RootParentID, empty)
		assert.ErrorIs(t, err, ErrEmptyComment, empty)
	}
	assert.Empty(t, store.comments)

	img, err := area.CreateComment(ctx, RootParentID, `<p><img src="a.png"></p>`)
	require.NoError(t, err)
	delete(store.comments, img)

	root, err := area.CreateComment(ctx, RootParentID, "<p>first</p>")
	require.NoError(t, err)
	stored := store.comments[root]
	assert.Equal(t, uint64(2), stored.UserID)
	assert.Equal(t, testNow.Unix(), stored.Created)
	assert.True(t, stored.IsRoot())

	reply, err := area.CreateComment(ctx, root, "reply")
	require.NoError(t, err)
	assert.Equal(t, root, store.comments[reply].ParentID)

	_, err = area.CreateComment(ctx, reply, "nested")
	var denied *DenialError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, ReasonReplyToReply, denied.Reason)

	_, err = area.CreateComment(ctx, 999, "missing")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestNumComments(t *testing.T) {
	store := newMemStore()
	store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "a", Created: 1})
	store.add(model.Comment{QuestionID: testQuestion, UserID: 1, Content: "b", Created: 2, Deleted: 3})
	area := newTestContainer(store, Viewer{UserID: 1}, Activity{})

	n, err := area.NumComments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
