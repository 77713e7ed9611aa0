package commentarea

import (
	"StudentQuiz/internal/api/dto"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
)

const timeLayout = "2006-01-02 15:04:05"

// AnonymousName 匿名作者的展示名
func AnonymousName(rowNumber int) string {
	return fmt.Sprintf("Anonymous Student #%d", rowNumber)
}

// ToDTO 按查看者权限生成评论视图，回复一并转换
func (n *Node) ToDTO() *dto.CommentDTO {
	c := n.row.Comment
	out := &dto.CommentDTO{}
	_ = copier.Copy(out, c)

	out.ShortContent = NiceShortenText(c.Content, n.area.shortenLength)
	out.NumberOfReplies = n.TotalReplies(false)
	out.IsRoot = c.IsRoot()
	out.IsDeleted = c.IsDeleted()
	out.CanEdit, _ = n.CanEdit()
	out.CanDelete, _ = n.CanDelete()
	out.CanUndelete, _ = n.CanUndelete()
	out.CanReply, _ = n.CanReply()
	out.CanReport, _ = n.CanReport()
	out.CanViewDeleted = n.CanViewDeleted()
	out.IsCreator = n.IsCreator()
	out.RowNumber = n.row.RowNumber
	out.AuthorID = -1

	switch {
	case c.IsDeleted() && !out.CanViewDeleted:
		out.Content = ""
		out.ShortContent = ""
	case !n.CanViewUsername():
		out.AuthorName = AnonymousName(n.row.RowNumber)
		out.PostedAt = formatTime(c.Created)
	default:
		if user := n.area.user(c.UserID); user != nil {
			out.AuthorName = user.FullName()
		}
		out.AuthorID = int64(c.UserID)
		out.AuthorProfile = n.area.profileURL(c.UserID)
		out.PostedAt = formatTime(c.Created)
		if c.IsDeleted() {
			out.DeletedAt = formatTime(c.Deleted)
			if c.DeleteUserID != nil {
				out.DeleteUser.ID = *c.DeleteUserID
				out.DeleteUser.ProfileURL = n.area.profileURL(*c.DeleteUserID)
				if du := n.area.user(*c.DeleteUserID); du != nil {
					out.DeleteUser.FirstName = du.FirstName
					out.DeleteUser.LastName = du.LastName
				}
			}
		}
	}

	if out.CanReport {
		out.ReportLink = fmt.Sprintf("%s/comment-report?commentid=%d", n.area.siteURL, c.ID)
	}

	out.Replies = make([]*dto.CommentDTO, 0, len(n.replies))
	for _, r := range n.replies {
		out.Replies = append(out.Replies, r.ToDTO())
	}
	return out
}

func formatTime(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).Format(timeLayout)
}
