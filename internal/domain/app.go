package domain

// App is a single catalog entry from the Steam app list. The catalog is
// read-only during scanning and its ordering (ascending app id) is the
// scan order.
type App struct {
	ID   int    `json:"appid"`
	Name string `json:"name"`
}
