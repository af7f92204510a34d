package testdata

// Account keeps its token out of every generated member.
//
//faststruct:getters
//faststruct:setters
//faststruct:builder
type Account struct {
	owner   string
	balance int64
	token   string `faststruct:"except" json:"-"`
}
