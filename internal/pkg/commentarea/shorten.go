package commentarea

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const imagePlaceholder = "[image]"

// NiceShortenText 去掉 HTML 标签，图片替换为占位符，合并空白后截断
func NiceShortenText(content string, length int) string {
	return shorten(visibleText(content), length)
}

// HasVisibleContent 正文去掉标签后既无文字也无图片时视为空
func HasVisibleContent(content string) bool {
	return visibleText(content) != ""
}

// visibleText 用户实际能看到的文本，图片记为占位符，空白合并为单个空格
func visibleText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	doc.Find("script,style").Remove()
	doc.Find("img").ReplaceWithHtml(" " + imagePlaceholder + " ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// shorten 超出 length 时尽量在词边界截断并追加 ...
func shorten(text string, length int) string {
	if length <= 0 || utf8.RuneCountInString(text) <= length {
		return text
	}
	runes := []rune(text)
	cut := runes[:length]
	if runes[length] != ' ' {
		for i := len(cut) - 1; i > length/2; i-- {
			if cut[i] == ' ' {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRight(string(cut), " ") + "..."
}
