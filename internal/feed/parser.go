// Package feed はMediumフィードの取得・パース・記事への射影を提供する。
package feed

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/gillesritchmond/portfolio-api/internal/model"
	"github.com/gillesritchmond/portfolio-api/internal/sanitize"
)

// Parser は生のフィードドキュメントをRawFeedItemの列に変換する。
// XMLパースはgofeedに任せ、抽出契約（欠落フィールドは空文字列、
// categoryは全件収集、ドキュメント順保持）をこの層で保証する。
// スキーマバリデーションは行わない。
type Parser struct {
	parser *gofeed.Parser
}

// NewParser はParserの新しいインスタンスを生成する。
func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

// Parse は生のフィードドキュメントをパースし、ドキュメント順のRawFeedItem列を返す。
// itemブロックが0件のドキュメントは空スライスを返す（エラーではない）。
// ドキュメント自体がXMLとして読めない場合のみエラーを返す。
func (p *Parser) Parse(document string) ([]model.RawFeedItem, error) {
	parsed, err := p.parser.ParseString(document)
	if err != nil {
		return nil, err
	}

	items := make([]model.RawFeedItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, convertItem(item))
	}
	return items, nil
}

// convertItem はgofeedのItemをRawFeedItemに変換する。
// 欠落フィールドは空文字列（単数）または空スライス（複数）に解決する。
// 各値はCDATA除去とトリムを通す（gofeedが剥がし損ねた場合の保険ではなく契約）。
func convertItem(item *gofeed.Item) model.RawFeedItem {
	raw := model.RawFeedItem{
		Title:       sanitize.StripCData(item.Title),
		Link:        sanitize.StripCData(item.Link),
		PubDate:     sanitize.StripCData(item.Published),
		Creator:     sanitize.StripCData(itemCreator(item)),
		GUID:        sanitize.StripCData(item.GUID),
		Description: sanitize.StripCData(item.Description),
		Content:     sanitize.StripCData(item.Content),
		Thumbnail:   mediaThumbnail(item),
	}

	raw.Categories = make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		raw.Categories = append(raw.Categories, sanitize.StripCData(c))
	}

	return raw
}

// itemCreator はdc:creatorを優先し、なければauthor要素にフォールバックする。
func itemCreator(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

// mediaThumbnail はmedia:thumbnail要素のurl属性を取り出す。なければ空文字列。
func mediaThumbnail(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	thumbs, ok := media["thumbnail"]
	if !ok || len(thumbs) == 0 {
		return ""
	}
	return strings.TrimSpace(thumbs[0].Attrs["url"])
}
