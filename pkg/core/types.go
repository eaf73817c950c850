package core

// Issue is a flattened, cleaned view of a tracker issue
type Issue struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Created     string    `json:"created"`
	Priority    string    `json:"priority"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee"`
	Reporter    string    `json:"reporter"`
	Comments    []Comment `json:"comments"`
	Link        string    `json:"link"`
}

// Comment is a single cleaned issue comment
type Comment struct {
	Body    string `json:"body"`
	Created string `json:"created"`
	Author  string `json:"author"`
}

// Project is a key/name pair identifying a tracker project
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Supported authentication modes
const (
	AuthTypeBasic  = "basic"
	AuthTypeBearer = "bearer"
)

// Config represents the fetcher configuration
type Config struct {
	Site     string
	Email    string
	APIToken string
	AuthType string
	LogLevel string
}
