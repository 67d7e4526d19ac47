package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractThumbnail はHTMLコンテンツから候補サムネイルURLを抽出する。
// CDATA除去後、最初のsrc属性付き<img>タグを探し、
// src付きのimgが1つもない場合のみ最初のdata-src属性にフォールバックする。
// 画像タグが見つからない場合は空文字列を返す。
func ExtractThumbnail(content string) string {
	c := StripCData(content)

	var firstSrc, firstDataSrc string

	tokenizer := html.NewTokenizer(strings.NewReader(c))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// io.EOFまたは不正なマークアップ。どちらも探索終了として扱う
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		token := tokenizer.Token()
		if token.Data != "img" {
			continue
		}

		for _, attr := range token.Attr {
			switch attr.Key {
			case "src":
				if firstSrc == "" && attr.Val != "" {
					firstSrc = attr.Val
				}
			case "data-src":
				if firstDataSrc == "" && attr.Val != "" {
					firstDataSrc = attr.Val
				}
			}
		}

		if firstSrc != "" {
			break
		}
	}

	if firstSrc != "" {
		return firstSrc
	}
	return firstDataSrc
}
