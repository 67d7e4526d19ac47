package sanitize

import "testing"

// TestExtractThumbnail_Src は最初のsrc属性付きimgタグのURLを返すことをテストする。
func TestExtractThumbnail_Src(t *testing.T) {
	content := `<p>intro</p><img src="https://cdn.example.com/a.png" alt="a"><img src="https://cdn.example.com/b.png">`
	got := ExtractThumbnail(content)
	if got != "https://cdn.example.com/a.png" {
		t.Errorf("ExtractThumbnail = %q, want first src", got)
	}
}

// TestExtractThumbnail_DataSrcFallback はsrc属性を持つimgが存在しない場合のみ
// data-src属性にフォールバックすることをテストする。
func TestExtractThumbnail_DataSrcFallback(t *testing.T) {
	content := `<p>x</p><img data-src="https://a/b.png">`
	got := ExtractThumbnail(content)
	if got != "https://a/b.png" {
		t.Errorf("ExtractThumbnail = %q, want %q", got, "https://a/b.png")
	}
}

// TestExtractThumbnail_SrcWinsOverEarlierDataSrc は後方のsrc付きimgが
// 前方のdata-srcのみのimgより優先されることをテストする。
func TestExtractThumbnail_SrcWinsOverEarlierDataSrc(t *testing.T) {
	content := `<img data-src="https://a/lazy.png"><img src="https://a/real.png">`
	got := ExtractThumbnail(content)
	if got != "https://a/real.png" {
		t.Errorf("ExtractThumbnail = %q, want src match", got)
	}
}

// TestExtractThumbnail_NoImage は画像タグがない場合に空文字列を返すことをテストする。
func TestExtractThumbnail_NoImage(t *testing.T) {
	if got := ExtractThumbnail("<p>text only</p>"); got != "" {
		t.Errorf("ExtractThumbnail = %q, want empty", got)
	}
}

// TestExtractThumbnail_CData はCDATAラッパー内のコンテンツからも抽出できることをテストする。
func TestExtractThumbnail_CData(t *testing.T) {
	content := `<![CDATA[<img src="https://a/c.png">]]>`
	got := ExtractThumbnail(content)
	if got != "https://a/c.png" {
		t.Errorf("ExtractThumbnail = %q, want %q", got, "https://a/c.png")
	}
}

// TestExtractThumbnail_Empty は空入力で空文字列を返すことをテストする。
func TestExtractThumbnail_Empty(t *testing.T) {
	if got := ExtractThumbnail(""); got != "" {
		t.Errorf("ExtractThumbnail(\"\") = %q, want empty", got)
	}
}
