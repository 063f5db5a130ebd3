package types

// Task is a user-scoped item cached by the client. The core never inspects it.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
