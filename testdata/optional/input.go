//go:build faststruct

package testdata

// Patch is a partial update.
//
//faststruct:optional
//nolint:unused
type Patch struct {
	// ID selects the record and is always required.
	ID   bool `faststruct:"except" json:"id"`
	Name uint `json:"name,omitempty"` // new name
	Tags []string
}
