//go:build faststruct

package testdata

//faststruct:optional
type Pair struct {
	Left
	Right `faststruct:"except"`
}
