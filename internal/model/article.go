// Package model はドメインモデルを定義する。
package model

// RawFeedItem はフィードドキュメントからパースした未加工の1エントリを表す。
// 各テキストフィールドはCDATAラッパーを剥がしてトリム済みだが、
// HTMLマークアップとHTMLエンティティはそのまま残っている。
// 欠落したフィールドは空文字列（単数）または空スライス（複数）になる。
type RawFeedItem struct {
	Title       string
	Link        string
	PubDate     string
	Creator     string
	GUID        string
	Description string   // 生HTML
	Content     string   // 生HTML（content:encoded）
	Categories  []string // ドキュメント順、重複あり
	Thumbnail   string   // media:thumbnail のurl属性。なければ空文字列
}

// Article は表示可能な状態までサニタイズした記事を表す。
// RawFeedItemと1:1で対応する。
type Article struct {
	Title       string   `json:"title"`    // エンティティデコード済みプレーンテキスト
	Link        string   `json:"link"`     // 絶対URL
	PubDate     string   `json:"pub_date"` // フィード上の公開日時（変換せずそのまま）
	Author      string   `json:"author"`   // エンティティデコード済み
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Description string   `json:"description"`  // プレーンテキスト。200文字超は切り詰め + "..."
	Content     string   `json:"content"`      // 生HTML（サニタイズしない）
	SafeContent string   `json:"safe_content"` // 許可リストポリシーでサニタイズ済みのHTML
	Categories  []string `json:"categories"`   // 順序保持、重複除去しない
	GUID        string   `json:"guid"`
	ReadingTime string   `json:"reading_time"` // 例: "3 min de lecture"
}
