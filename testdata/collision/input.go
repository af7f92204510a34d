package testdata

// Clash has an exported field, so its accessor shares the field's name.
//
//faststruct:getters
type Clash struct {
	Bar string
}
