package commentarea

import (
	"StudentQuiz/internal/model"
	"sort"
)

// Query 一次评论查询的计划
//
// Limit > 0 时先按 created DESC, id DESC 取最新的 Limit 条根评论作为窗口，
// 再按 Sort 排列窗口内的根评论。回复总是 created ASC, id ASC。
type Query struct {
	QuestionID uint64
	RootID     uint64
	Limit      int
	Sort       SortFeature
}

// NewQuery 生成查询计划，负数 limit 视为 ShowAll
func NewQuery(questionID uint64, limit int, sort SortFeature) Query {
	if limit < 0 {
		limit = ShowAll
	}
	return Query{QuestionID: questionID, Limit: limit, Sort: sort}
}

// Windowed 是否只取最新的若干根评论
func (q Query) Windowed() bool {
	return q.Limit > ShowAll
}

// Row 查询结果中的一行及其序号
type Row struct {
	Comment   *model.Comment
	RowNumber int
}

// numberRows 根评论按创建时间编号 1..R，回复从 R+1 起同样按创建时间编号
// 编号与展示排序无关，切换排序不会改变匿名标签
func numberRows(comments []*model.Comment) []*Row {
	roots := make([]*model.Comment, 0, len(comments))
	replies := make([]*model.Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsRoot() {
			roots = append(roots, c)
		} else {
			replies = append(replies, c)
		}
	}

	numbers := make(map[uint64]int, len(comments))
	next := 1
	for _, group := range [][]*model.Comment{roots, replies} {
		ordered := make([]*model.Comment, len(group))
		copy(ordered, group)
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Created != ordered[j].Created {
				return ordered[i].Created < ordered[j].Created
			}
			return ordered[i].ID < ordered[j].ID
		})
		for _, c := range ordered {
			numbers[c.ID] = next
			next++
		}
	}

	rows := make([]*Row, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, &Row{Comment: c, RowNumber: numbers[c.ID]})
	}
	return rows
}
