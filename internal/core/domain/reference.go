package domain

// Genre is a seeded reference record. Films hold zero or more genres,
// ordered by ascending id.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Rating is a seeded MPA rating reference record. Every film carries
// exactly one.
type Rating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
