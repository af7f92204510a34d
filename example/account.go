package example

//go:generate go run github.com/ecordell/faststruct .

// Account is a ledger entry. Its token is never exposed by generated members.
//
//faststruct:getters
//faststruct:setters
//faststruct:builder
type Account struct {
	owner   string
	balance int64
	token   string `faststruct:"except"`
}

// Rotate replaces the account token.
func (a *Account) Rotate(token string) {
	a.token = token
}

// Authorized reports whether token matches the account token.
func (a *Account) Authorized(token string) bool {
	return a.token != "" && a.token == token
}

// Server is assembled from flags, falling back to the default port.
//
//faststruct:builder
type Server struct {
	Host    string
	Port    int  `default:"8080"`
	Verbose bool `faststruct:"except"`
}
