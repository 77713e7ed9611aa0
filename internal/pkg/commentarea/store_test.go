package commentarea

import (
	"StudentQuiz/internal/model"
	"context"
	"slices"
	"sort"
	"time"
)

// memStore 只支持按日期排序，足够覆盖容器与节点的语义
type memStore struct {
	comments  map[uint64]*model.Comment
	nextID    uint64
	lastQuery Query
}

func newMemStore() *memStore {
	return &memStore{comments: make(map[uint64]*model.Comment), nextID: 1}
}

func (m *memStore) add(c model.Comment) uint64 {
	c.ID = m.nextID
	m.nextID++
	m.comments[c.ID] = &c
	return c.ID
}

func (m *memStore) ordered() []*model.Comment {
	out := make([]*model.Comment, 0, len(m.comments))
	for _, c := range m.comments {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created != out[j].Created {
			return out[i].Created < out[j].Created
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memStore) QueryComments(_ context.Context, q Query) ([]*model.Comment, error) {
	m.lastQuery = q
	all := m.ordered()
	roots := make([]*model.Comment, 0)
	for _, c := range all {
		if c.QuestionID == q.QuestionID && c.IsRoot() && (q.RootID == 0 || c.ID == q.RootID) {
			roots = append(roots, c)
		}
	}
	if q.Windowed() && len(roots) > q.Limit {
		roots = roots[len(roots)-q.Limit:]
	}
	if q.Sort.Desc() {
		slices.Reverse(roots)
	}
	ids := make(map[uint64]struct{}, len(roots))
	for _, r := range roots {
		ids[r.ID] = struct{}{}
	}
	out := append([]*model.Comment{}, roots...)
	for _, c := range all {
		if _, ok := ids[c.ParentID]; ok && c.QuestionID == q.QuestionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) GetCommentByID(_ context.Context, id uint64) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) CreateComment(_ context.Context, c *model.Comment) error {
	c.ID = m.add(*c)
	return nil
}

func (m *memStore) SetDeleted(_ context.Context, id uint64, deleted int64, deleteUserID *uint64) error {
	if c, ok := m.comments[id]; ok {
		c.Deleted = deleted
		c.DeleteUserID = deleteUserID
	}
	return nil
}

func (m *memStore) CountComments(_ context.Context, questionID uint64) (int64, error) {
	var n int64
	for _, c := range m.comments {
		if c.QuestionID == questionID && !c.IsDeleted() {
			n++
		}
	}
	return n, nil
}

type memUsers map[uint64]*model.User

func (u memUsers) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := u[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

const testQuestion uint64 = 10

var testNow = time.Unix(1_700_000_000, 0)

func testUsers() memUsers {
	return memUsers{
		1: {ID: 1, FirstName: "Alice", LastName: "Zhang"},
		2: {ID: 2, FirstName: "Bob", LastName: "Li"},
		3: {ID: 3, FirstName: "Carol", LastName: "Wang"},
	}
}

func newTestContainer(store *memStore, viewer Viewer, activity Activity) *Container {
	return NewContainer(Options{
		Store:      store,
		Users:      testUsers(),
		QuestionID: testQuestion,
		Viewer:     viewer,
		Activity:   activity,
		SiteURL:    "https://quiz.example.com/",
		Now:        func() time.Time { return testNow },
	})
}
