package commentarea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNiceShortenTextStripsMarkup(t *testing.T) {
	got := NiceShortenText("<p>Hello   <b>world</b></p><script>alert(1)</script>", 160)
	assert.Equal(t, "Hello world", got)
}

func TestNiceShortenTextReplacesImages(t *testing.T) {
	got := NiceShortenText(`<p>see<img src="a.png">here</p>`, 160)
	assert.Equal(t, "see [image] here", got)
}

func TestNiceShortenTextEmpty(t *testing.T) {
	assert.Equal(t, "", NiceShortenText("", 10))
}

func TestShortenBreaksOnWord(t *testing.T) {
	assert.Equal(t, "aaaa bbbb...", shorten("aaaa bbbb cccc", 10))
	assert.Equal(t, "aaaa bbbb...", shorten("aaaa bbbb cccc", 9))
	assert.Equal(t, "short", shorten("short", 10))
}

func TestShortenLongWord(t *testing.T) {
	text := strings.Repeat("x", 30)
	assert.Equal(t, strings.Repeat("x", 10)+"...", shorten(text, 10))
}

func TestShortenCountsRunes(t *testing.T) {
	assert.Equal(t, "评论内容", shorten("评论内容", 4))
	assert.Equal(t, "评论...", shorten("评论内容", 2))
}
