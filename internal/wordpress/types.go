package wordpress

// Post is the decoded result of creating a post
type Post struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
}

// Media is the decoded result of creating a media attachment
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// Term is a category or tag
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// User is a WordPress user account
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostPayload is the request body for creating a post
type PostPayload struct {
	Date          string `json:"date"`
	DateGMT       string `json:"date_gmt"`
	Modified      string `json:"modified"`
	ModifiedGMT   string `json:"modified_gmt"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
	Categories    []int  `json:"categories,omitempty"`
	Tags          []int  `json:"tags,omitempty"`
	Author        int    `json:"author,omitempty"`
}

// TermPayload is the request body for creating a category or tag
type TermPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserPayload is the request body for creating a user
type UserPayload struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Slug     string   `json:"slug"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Upload carries image bytes and the attachment metadata applied after the
// binary upload step
type Upload struct {
	Name        string
	Data        []byte
	Description string
	Caption     string
}

// mediaMeta is the second request of the two-step media creation
type mediaMeta struct {
	Description string `json:"description,omitempty"`
	Caption     string `json:"caption,omitempty"`
}
