package testdata

// Server is assembled with a builder.
//
//faststruct:builder
type Server struct {
	host    string
	port    int `default:"8080"`
	verbose bool `faststruct:"except"`
}
