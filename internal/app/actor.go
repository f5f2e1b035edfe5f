package app

// Actor identifies who triggered an update and where replies go.
type Actor struct {
	UserID   int64
	ChatID   int64
	Username string
}
