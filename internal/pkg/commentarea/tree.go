package commentarea

// Tree 两层评论树，Roots 保持查询返回的顺序，Children 保持回复的查询顺序
type Tree struct {
	Roots    []uint64
	Children map[uint64][]uint64
	rows     map[uint64]*Row
}

// BuildTree 单次遍历构建根评论到回复的邻接表
// 父评论不在结果集中的回复会被丢弃
func BuildTree(rows []*Row) *Tree {
	t := &Tree{
		Roots:    make([]uint64, 0),
		Children: make(map[uint64][]uint64),
		rows:     make(map[uint64]*Row, len(rows)),
	}

	pending := make(map[uint64][]uint64)
	for _, row := range rows {
		c := row.Comment
		if _, seen := t.rows[c.ID]; seen {
			continue
		}
		t.rows[c.ID] = row

		if c.IsRoot() {
			t.Roots = append(t.Roots, c.ID)
			if _, ok := t.Children[c.ID]; !ok {
				t.Children[c.ID] = make([]uint64, 0)
			}
			continue
		}
		pending[c.ParentID] = append(pending[c.ParentID], c.ID)
	}

	for _, rootID := range t.Roots {
		t.Children[rootID] = append(t.Children[rootID], pending[rootID]...)
	}
	return t
}

// Row 按 id 取行，不存在时返回 nil
func (t *Tree) Row(id uint64) *Row {
	return t.rows[id]
}

// Size 树中实际挂上的行数
func (t *Tree) Size() int {
	n := len(t.Roots)
	for _, rootID := range t.Roots {
		n += len(t.Children[rootID])
	}
	return n
}
