package example

// Apply copies the fields present in p onto a.
func (p Patch) Apply(a *Account) {
	if p.Owner != nil {
		a.SetOwner(*p.Owner)
	}
	if p.Balance != nil {
		a.SetBalance(*p.Balance)
	}
}
