package testdata

type Left struct {
	L int
}

type Right struct {
	R int
}
