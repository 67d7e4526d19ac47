// Package sanitize はフィード由来テキストのプレーンテキスト化を提供する。
// CDATAラッパーの除去、固定セットのHTMLエンティティのデコード、
// HTMLタグの除去、サムネイルURLの抽出を含む。
//
// すべての関数は任意のテキスト入力に対する全域関数であり、決してエラーを返さない。
// 不正な入力は例外にせず、元のテキストをそのまま通す。
package sanitize

import (
	"regexp"
	"strings"
)

// cdataRe はCDATAラッパーにマッチする。中身はキャプチャして残す。
var cdataRe = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// tagRe はHTMLタグにマッチする（非貪欲、ネスト非対応）。
// `>` で閉じられていない `<` はタグとみなさず、リテラル文字として残る。
var tagRe = regexp.MustCompile(`<[^>]*>`)

// entityReplacements は固定セットのエンティティと置換順序。
// 置換はこの順序で1エンティティずつ左から右への全置換として適用する。
// &amp; を構造エンティティ（&lt; &gt;）より先にデコードするのは元仕様の選択であり、
// 二重エスケープ入力（&amp;lt; など）は最終的に < までデコードされる。
// 未知のエンティティは変更せずに通す。
var entityReplacements = []struct {
	entity  string
	literal string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// StripCData はCDATAラッパーをすべて取り除き、中身だけを残してトリムする。
// 1つの文字列に複数のラッパーがあってもすべて除去する。冪等。
func StripCData(text string) string {
	return strings.TrimSpace(cdataRe.ReplaceAllString(text, "$1"))
}

// DecodeEntities は固定セットのHTMLエンティティをリテラル文字に置換してトリムする。
// フルセットのエンティティテーブルは意図的に使わない（Medium RSSにはこれで十分）。
func DecodeEntities(text string) string {
	for _, r := range entityReplacements {
		text = strings.ReplaceAll(text, r.entity, r.literal)
	}
	return strings.TrimSpace(text)
}

// StripTags はCDATA除去 → HTMLタグ除去 → エンティティデコードを順に適用し、
// プレーンテキストを返す。不正なマークアップのパースは試みない。
func StripTags(html string) string {
	noCdata := StripCData(html)
	textOnly := tagRe.ReplaceAllString(noCdata, "")
	return DecodeEntities(textOnly)
}
