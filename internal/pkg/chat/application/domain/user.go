package chat

// User is reference data owned by the account subsystem. The chat core reads
// it to resolve display names and writes only the Online projection through
// the presence flag task.
type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Online   bool   `db:"online"`
}
