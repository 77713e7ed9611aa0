package commentarea

import (
	"StudentQuiz/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQueryNegativeLimitShowsAll(t *testing.T) {
	q := NewQuery(1, -3, DefaultSort)
	assert.Equal(t, ShowAll, q.Limit)
	assert.False(t, q.Windowed())
	assert.True(t, NewQuery(1, 5, DefaultSort).Windowed())
}

func TestNumberRowsIgnoresInputOrder(t *testing.T) {
	comments := []*model.Comment{
		{ID: 3, Created: 300},
		{ID: 1, Created: 100},
		{ID: 5, ParentID: 1, Created: 150},
		{ID: 2, Created: 100},
		{ID: 4, ParentID: 3, Created: 120},
	}

	numbers := make(map[uint64]int)
	for _, row := range numberRows(comments) {
		numbers[row.Comment.ID] = row.RowNumber
	}

	// 根评论先编号，同一时间按 id
	assert.Equal(t, map[uint64]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}, numbers)
}

func TestNumberRowsKeepsInputSequence(t *testing.T) {
	comments := []*model.Comment{{ID: 9, Created: 9}, {ID: 8, Created: 8}}
	rows := numberRows(comments)
	assert.Equal(t, uint64(9), rows[0].Comment.ID)
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, 1, rows[1].RowNumber)
}
