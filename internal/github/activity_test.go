package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// sampleEvents は1つのPushEvent（3コミット）と1つのPullRequestEventを含む。
func sampleEvents() []model.Event {
	push := model.Event{
		ID:        "100",
		Type:      "PushEvent",
		CreatedAt: "2025-08-10T10:00:00Z",
	}
	push.Actor.Login = "testuser"
	push.Actor.AvatarURL = "https://avatars.example/u/1"
	push.Repo.Name = "testuser/web-data-toolkit"
	push.Payload.Commits = []struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
		URL     string `json:"url"`
	}{
		{SHA: "aaa111", Message: "Fix parser\n\ndetails here", URL: "https://api.github.com/repos/testuser/web-data-toolkit/commits/aaa111"},
		{SHA: "bbb222", Message: "Add tests", URL: "https://api.github.com/repos/testuser/web-data-toolkit/commits/bbb222"},
		{SHA: "ccc333", Message: "Should be dropped", URL: "https://api.github.com/repos/testuser/web-data-toolkit/commits/ccc333"},
	}

	pr := model.Event{
		ID:        "101",
		Type:      "PullRequestEvent",
		CreatedAt: "2025-08-12T09:00:00Z",
	}
	pr.Actor.Login = "testuser"
	pr.Repo.Name = "someone/shared-lib"
	pr.Payload.PullRequest = &struct {
		Number  int    `json:"number"`
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
	}{Number: 7, Title: "Add retry support", HTMLURL: "https://github.com/someone/shared-lib/pull/7"}

	issue := model.Event{ID: "102", Type: "IssuesEvent", CreatedAt: "2025-08-13T09:00:00Z"}
	issue.Repo.Name = "testuser/web-data-toolkit"

	return []model.Event{push, pr, issue}
}

func newEventsServer(t *testing.T, events []model.Event) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, events)
	}))
}

// TestGetActivityFeed はイベントからフィードを導出することをテストする。
//   - PushEventは先頭2コミットまで
//   - PullRequestEventは1件
//   - それ以外のイベント種別は無視
//   - 日時降順
func TestGetActivityFeed(t *testing.T) {
	ts := newEventsServer(t, sampleEvents())
	defer ts.Close()

	c := newTestClient(t, ts.URL, "", "")
	items := c.GetActivityFeed(context.Background(), 0)

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3 (コミット2件 + PR1件)", len(items))
	}

	// PRイベントの方が新しいので先頭に来る
	if items[0].Type != "pr" {
		t.Errorf("items[0].Type = %s, want pr", items[0].Type)
	}
	if items[0].Repo != "shared-lib" {
		t.Errorf("items[0].Repo = %s, want shared-lib (owner部分を除く)", items[0].Repo)
	}
	if items[0].URL != "https://github.com/someone/shared-lib/pull/7" {
		t.Errorf("items[0].URL = %s", items[0].URL)
	}

	if items[1].Type != "commit" {
		t.Fatalf("items[1].Type = %s, want commit", items[1].Type)
	}
	if items[1].Title != "Fix parser" {
		t.Errorf("コミットタイトルは1行目のみ: %q", items[1].Title)
	}
	wantURL := "https://github.com/testuser/web-data-toolkit/commit/aaa111"
	if items[1].URL != wantURL {
		t.Errorf("items[1].URL = %s, want %s", items[1].URL, wantURL)
	}
}

// TestGetActivityFeed_Limit はlimitで切り詰めることをテストする。
func TestGetActivityFeed_Limit(t *testing.T) {
	ts := newEventsServer(t, sampleEvents())
	defer ts.Close()

	c := newTestClient(t, ts.URL, "", "")
	items := c.GetActivityFeed(context.Background(), 1)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
}

// TestGetActivityFeed_UpstreamError は失敗時に空スライスを返すことをテストする。
func TestGetActivityFeed_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "", "")
	items := c.GetActivityFeed(context.Background(), 0)

	if items == nil || len(items) != 0 {
		t.Errorf("失敗時は空スライスを返すべき: %v", items)
	}
}

func TestCommitHTMLURL(t *testing.T) {
	got := commitHTMLURL("https://api.github.com/repos/o/r/commits/abc")
	want := "https://github.com/o/r/commit/abc"
	if got != want {
		t.Errorf("commitHTMLURL = %s, want %s", got, want)
	}
}
