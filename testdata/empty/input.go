//go:build faststruct

package testdata

//faststruct:optional
type Empty struct{}
