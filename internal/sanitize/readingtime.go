package sanitize

import (
	"fmt"
	"strings"
)

// wordsPerMinute は読了時間の推定に使う1分あたりの語数。
const wordsPerMinute = 200

// ReadingTime はHTMLコンテンツの推定読了時間を返す。
// タグ除去後のテキストを空白の連続で分割して語数を数え、
// ceil(語数/200) 分とする。空コンテンツは最低1分に切り上げる。
func ReadingTime(content string) string {
	text := StripTags(content)
	words := len(strings.Fields(text))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min de lecture", minutes)
}
