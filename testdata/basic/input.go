package testdata

// Foo is a plain struct with accessors and mutators.
//
//faststruct:getters
//faststruct:setters
type Foo struct {
	bar string
	baz int16
}
