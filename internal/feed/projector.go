package feed

import (
	"github.com/gillesritchmond/portfolio-api/internal/model"
	"github.com/gillesritchmond/portfolio-api/internal/sanitize"
)

// maxDescriptionLen は記事説明文の切り詰め長（サニタイズ後のテキストに対して適用）。
const maxDescriptionLen = 200

// ContentSanitizer は表示用HTMLサニタイズのインターフェース。
type ContentSanitizer interface {
	Sanitize(rawHTML string) string
}

// Projector はRawFeedItemを表示可能なArticleに射影する。
type Projector struct {
	sanitizer ContentSanitizer
}

// NewProjector はProjectorの新しいインスタンスを生成する。
func NewProjector(sanitizer ContentSanitizer) *Projector {
	return &Projector{sanitizer: sanitizer}
}

// Project はパース済みアイテム列を記事列に1:1で変換する。
func (p *Projector) Project(items []model.RawFeedItem) []model.Article {
	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, p.projectOne(item))
	}
	return articles
}

// projectOne は1件のRawFeedItemをArticleに変換する。
//   - title, author: エンティティデコードのみ（タイトルにタグは入らない前提）
//   - description: タグ除去+デコード後、200文字超なら切り詰めて "..." を付与
//   - content: 生HTMLのまま保持。表示用にサニタイズ済みバリアントを併せて持つ
//   - thumbnail: フィード宣言値を優先し、なければcontentから画像タグを抽出
//   - categories: 個別にデコード、順序保持、重複除去しない
func (p *Projector) projectOne(item model.RawFeedItem) model.Article {
	description := sanitize.StripTags(item.Description)
	if runes := []rune(description); len(runes) > maxDescriptionLen {
		description = string(runes[:maxDescriptionLen]) + "..."
	}

	thumbnail := item.Thumbnail
	if thumbnail == "" {
		thumbnail = sanitize.ExtractThumbnail(item.Content)
	}

	categories := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		categories = append(categories, sanitize.DecodeEntities(c))
	}

	return model.Article{
		Title:       sanitize.DecodeEntities(item.Title),
		Link:        item.Link,
		PubDate:     item.PubDate,
		Author:      sanitize.DecodeEntities(item.Creator),
		Thumbnail:   thumbnail,
		Description: description,
		Content:     item.Content,
		SafeContent: p.sanitizer.Sanitize(item.Content),
		Categories:  categories,
		GUID:        item.GUID,
		ReadingTime: sanitize.ReadingTime(item.Content),
	}
}
