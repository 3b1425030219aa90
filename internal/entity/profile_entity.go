package entity

// Profile is the per-user document stored next to the notes tree.
type Profile struct {
	Uid  string
	Name string
}
