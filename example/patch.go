//go:build faststruct

package example

// Patch is a partial update of an Account. Absent fields are left alone.
//
//faststruct:optional
type Patch struct {
	// ID selects the account and is always present.
	ID      string `faststruct:"except" json:"id"`
	Owner   string `json:"owner,omitempty"`
	Balance int64  `json:"balance,omitempty"`
}
