package dto

type TaxonomyGroup struct {
	Name   string   `json:"name"`
	Leaves []string `json:"leaves"`
}

type ResolvedPathResponse struct {
	Section string `json:"section"`
	Group   string `json:"group"`
	Leaf    string `json:"leaf"`
	Path    string `json:"path"`
}
