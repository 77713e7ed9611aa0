package commentarea

import (
	"StudentQuiz/internal/model"
	"context"
	"fmt"
	"strings"
	"time"
)

// Store 评论持久化
type Store interface {
	// QueryComments 按计划返回根评论(展示顺序)及其全部回复(创建时间升序)
	QueryComments(ctx context.Context, q Query) ([]*model.Comment, error)
	// GetCommentByID 不存在时返回 nil, nil
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	SetDeleted(ctx context.Context, id uint64, deleted int64, deleteUserID *uint64) error
	CountComments(ctx context.Context, questionID uint64) (int64, error)
}

// UserDirectory 批量查询用户
type UserDirectory interface {
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
}

type Options struct {
	Store          Store
	Users          UserDirectory
	QuestionID     uint64
	Viewer         Viewer
	Activity       Activity
	EditableWindow time.Duration
	ShortenLength  int
	SiteURL        string
	Now            func() time.Time
}

// Container 某道题目的评论区，生命周期为单次请求
type Container struct {
	store          Store
	users          UserDirectory
	questionID     uint64
	viewer         Viewer
	activity       Activity
	editableWindow time.Duration
	shortenLength  int
	siteURL        string
	now            func() time.Time

	userCache map[uint64]*model.User
}

func NewContainer(opts Options) *Container {
	c := &Container{
		store:          opts.Store,
		users:          opts.Users,
		questionID:     opts.QuestionID,
		viewer:         opts.Viewer,
		activity:       opts.Activity,
		editableWindow: opts.EditableWindow,
		shortenLength:  opts.ShortenLength,
		siteURL:        strings.TrimRight(opts.SiteURL, "/"),
		now:            opts.Now,
		userCache:      make(map[uint64]*model.User),
	}
	if c.editableWindow <= 0 {
		c.editableWindow = DefaultEditableWindow
	}
	if c.shortenLength <= 0 {
		c.shortenLength = ShortenLength
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

func (c *Container) QuestionID() uint64 {
	return c.questionID
}

func (c *Container) Viewer() Viewer {
	return c.viewer
}

// Anonymized 当前查看者是否只能看到匿名作者
func (c *Container) Anonymized() bool {
	return c.viewer.Anonymized(c.activity)
}

// SortableFields 当前查看者可用的排序字段
func (c *Container) SortableFields() []SortField {
	return SortableFields(c.Anonymized())
}

// FetchAll 按窗口策略取根评论并挂上回复，limit 为 ShowAll 时取全部
func (c *Container) FetchAll(ctx context.Context, limit int, sort SortFeature) ([]*Node, error) {
	if !sort.Available(c.Anonymized()) {
		sort = DefaultSort
	}
	return c.fetch(ctx, NewQuery(c.questionID, limit, sort))
}

// FetchOne 取单条评论，回复会连同其根评论一起加载
func (c *Container) FetchOne(ctx context.Context, id uint64) (*Node, error) {
	comment, err := c.store.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.QuestionID != c.questionID {
		return nil, ErrCommentNotFound
	}

	rootID := comment.ID
	if !comment.IsRoot() {
		rootID = comment.ParentID
	}

	q := NewQuery(c.questionID, ShowAll, DefaultSort)
	q.RootID = rootID
	nodes, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, ErrCommentNotFound
	}

	root := nodes[0]
	if root.ID() == id {
		return root, nil
	}
	for _, reply := range root.replies {
		if reply.ID() == id {
			return reply, nil
		}
	}
	return nil, ErrCommentNotFound
}

// CreateComment 创建根评论或回复，返回新评论 id
func (c *Container) CreateComment(ctx context.Context, replyTo uint64, content string) (uint64, error) {
	if !HasVisibleContent(content) {
		return 0, ErrEmptyComment
	}

	if replyTo != RootParentID {
		parent, err := c.FetchOne(ctx, replyTo)
		if err != nil {
			return 0, err
		}
		if ok, reason := parent.CanReply(); !ok {
			return 0, &DenialError{Op: "reply", Reason: reason}
		}
	}

	comment := &model.Comment{
		QuestionID: c.questionID,
		ParentID:   replyTo,
		UserID:     c.viewer.UserID,
		Content:    content,
		Created:    c.now().Unix(),
	}
	if err := c.store.CreateComment(ctx, comment); err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// NumComments 未删除的评论总数
func (c *Container) NumComments(ctx context.Context) (int64, error) {
	return c.store.CountComments(ctx, c.questionID)
}

func (c *Container) fetch(ctx context.Context, q Query) ([]*Node, error) {
	comments, err := c.store.QueryComments(ctx, q)
	if err != nil {
		return nil, err
	}

	tree := BuildTree(numberRows(comments))
	if err = c.loadUsers(ctx, userIDs(comments)); err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(tree.Roots))
	for _, rootID := range tree.Roots {
		root := newNode(c, tree.Row(rootID))
		for _, replyID := range tree.Children[rootID] {
			root.replies = append(root.replies, newNode(c, tree.Row(replyID)))
		}
		nodes = append(nodes, root)
	}
	return nodes, nil
}

// loadUsers 一次查询补齐缓存中缺少的用户
func (c *Container) loadUsers(ctx context.Context, ids []uint64) error {
	missing := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.userCache[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	users, err := c.users.GetUserByIds(ctx, missing)
	if err != nil {
		return fmt.Errorf("load comment users: %w", err)
	}
	for _, u := range users {
		c.userCache[u.ID] = u
	}
	// 查不到的用户也记下，避免重复查询
	for _, id := range missing {
		if _, ok := c.userCache[id]; !ok {
			c.userCache[id] = nil
		}
	}
	return nil
}

func (c *Container) user(id uint64) *model.User {
	return c.userCache[id]
}

func (c *Container) profileURL(userID uint64) string {
	return fmt.Sprintf("%s/user/profile?id=%d", c.siteURL, userID)
}

func userIDs(comments []*model.Comment) []uint64 {
	seen := make(map[uint64]struct{}, len(comments))
	ids := make([]uint64, 0, len(comments))
	add := func(id uint64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, c := range comments {
		add(c.UserID)
		if c.DeleteUserID != nil {
			add(*c.DeleteUserID)
		}
	}
	return ids
}
