package catalog

type CategoryResponse struct {
	Name  string       `json:"name"`
	Types []TypeOption `json:"types"`
}

type CatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type RolesResponse struct {
	Roles []Role `json:"roles"`
}
