package model

// Repo はGitHubリポジトリのREST APIレスポンスのうち、表示に使う部分。
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Homepage    string   `json:"homepage"`
	Language    string   `json:"language"`
	Stargazers  int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	UpdatedAt   string   `json:"updated_at"`
	CreatedAt   string   `json:"created_at"`
	Topics      []string `json:"topics"`
	Private     bool     `json:"private"`
}

// Commit はリポジトリのコミット一覧APIのレスポンス要素。
type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
	HTMLURL string `json:"html_url"`
	Author  *struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"author"`
}

// Event はユーザーの公開イベントストリームの1要素。
type Event struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Actor struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"actor"`
	Repo struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"repo"`
	Payload struct {
		Action  string `json:"action,omitempty"`
		Commits []struct {
			SHA     string `json:"sha"`
			Message string `json:"message"`
			URL     string `json:"url"`
		} `json:"commits,omitempty"`
		PullRequest *struct {
			Number  int    `json:"number"`
			Title   string `json:"title"`
			HTMLURL string `json:"html_url"`
		} `json:"pull_request,omitempty"`
	} `json:"payload"`
	CreatedAt string `json:"created_at"`
}

// ActivityItem は公開イベントから導出したアクティビティフィードの1件。
type ActivityItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // commit, pr
	Repo        string `json:"repo"`
	RepoURL     string `json:"repo_url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Date        string `json:"date"`
	Author      struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"author"`
}

// CollaborativeRepo は自分以外がオーナーのリポジトリへの貢献を表す。
type CollaborativeRepo struct {
	Repo
	Contributions int    `json:"contributions"`
	Role          string `json:"role"`
}

// RepoContribution はリポジトリごとのコミット貢献数。
type RepoContribution struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

// ActivityOverview はGraphQLのcontributionsCollectionから得る活動概要。
// トークンがない場合は取得できない。
type ActivityOverview struct {
	Commits                 int                `json:"commits"`
	Issues                  int                `json:"issues"`
	PullRequests            int                `json:"pull_requests"`
	CodeReviews             int                `json:"code_reviews"`
	RepositoriesContributed int                `json:"repositories_contributed"`
	CommitsByRepo           []RepoContribution `json:"commits_by_repo"`
}
